package mail_fx

import (
	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/services"
	"moments/pkg/logger"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.Config, log *logger.Logger) (services.MailServiceInterface, error) {
	recipients := []string{}
	for _, addr := range []string{cfg.FriendEmail, cfg.EmailUser} {
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}

	smtpCfg := services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   cfg.EmailUser,
		Password:   cfg.EmailPass,
		From:       cfg.EmailUser,
		FromName:   "Moments",
		Recipients: recipients,
		UseSSL:     cfg.SMTPPort == 465,
		RequireTLS: true,
		AppName:    "Moments",
	}

	if !cfg.EmailEnabled() {
		log.Warn("email notifications disabled: EMAIL_USER or EMAIL_PASS missing")
	}
	return services.NewSMTPMailService(smtpCfg)
}
