package db_fx

import (
	"context"

	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/infra"
	"moments/internal/repositories"
	"moments/pkg/logger"
)

var Module = fx.Provide(
	provideActivityRepo)

// provideActivityRepo picks the activity store named by STORAGE_DRIVER.
func provideActivityRepo(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) (repositories.ActivityRepositoryInterface, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory activity store; data is lost on restart")
		return repositories.NewMemoryActivityRepository(), nil
	}

	db, err := infra.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("database ready", "driver", cfg.StorageDriver)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return infra.CloseDatabase(db)
		},
	})
	return repositories.NewActivityRepository(db), nil
}
