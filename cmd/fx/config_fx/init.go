package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"moments/internal/config"
	"moments/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(config.Load, provideLogger),
	fx.Invoke(registerLogger),
)

func provideLogger(cfg config.Config) (*logger.Logger, error) {
	return logger.New(cfg.AppEnv)
}

// registerLogger makes zap.S() (used by the HTTP error helpers) share our logger
// and flushes it on shutdown.
func registerLogger(lc fx.Lifecycle, log *logger.Logger) {
	restore := zap.ReplaceGlobals(log.Desugar())
	lc.Append(fx.StopHook(func() {
		log.Sync()
		restore()
	}))
}
