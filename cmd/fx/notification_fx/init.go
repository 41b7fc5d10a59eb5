package notification_fx

import (
	"context"

	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/services"
	"moments/pkg/logger"
)

var Module = fx.Provide(
	provideSMSService, provideDispatcher, provideNotificationQueue)

func provideSMSService(cfg config.Config, log *logger.Logger) services.SMSServiceInterface {
	if !cfg.SMSEnabled() {
		log.Warn("sms notifications disabled: Twilio credentials missing")
	}
	return services.NewSMSService(services.SMSConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioPhoneNumber,
		Recipients: cfg.SMSRecipients,
		Timeout:    cfg.NotifyTimeout,
	})
}

func provideDispatcher(
	lc fx.Lifecycle,
	cfg config.Config,
	log *logger.Logger,
	mail services.MailServiceInterface,
	sms services.SMSServiceInterface,
) *services.Dispatcher {
	d := services.NewDispatcher(services.DispatcherConfig{
		QueueSize: cfg.NotifyQueueSize,
		Timeout:   cfg.NotifyTimeout,
	}, log, mail, sms)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
	return d
}

func provideNotificationQueue(d *services.Dispatcher) services.NotificationQueue {
	return d
}
