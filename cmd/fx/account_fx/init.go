package account_fx

import (
	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/services"
	"moments/pkg/logger"
	"moments/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer, provideAccountService)

func provideTokenIssuer(cfg config.Config) (*utils.TokenIssuer, error) {
	if err := cfg.CheckJWTSecret(); err != nil {
		return nil, err
	}
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL), nil
}

func provideAccountService(cfg config.Config, issuer *utils.TokenIssuer, log *logger.Logger) (services.AccountServiceInterface, error) {
	return services.NewAccountService(map[utils.Partner]string{
		utils.PartnerAyoub:  cfg.AyoubPassword,
		utils.PartnerMedina: cfg.MedinaPassword,
	}, issuer, log)
}
