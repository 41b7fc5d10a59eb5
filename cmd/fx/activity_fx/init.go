package activity_fx

import (
	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/repositories"
	"moments/internal/services"
	"moments/pkg/logger"
)

var Module = fx.Provide(
	provideActivityService, services.NewCalendarService)

func provideActivityService(
	repo repositories.ActivityRepositoryInterface,
	queue services.NotificationQueue,
	cfg config.Config,
	log *logger.Logger,
) services.ActivityServiceInterface {
	return services.NewActivityService(repo, queue, cfg.NotifyOnCreate, log)
}
