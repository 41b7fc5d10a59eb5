package room_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/models/room_models"
	"moments/internal/services"
	"moments/pkg/logger"
	mem "moments/pkg/memcache"
)

const sweepInterval = 10 * time.Minute

var Module = fx.Provide(provideRoomService)

// provideRoomService also runs a sweeper so idle rooms do not pile up.
func provideRoomService(lc fx.Lifecycle, cfg config.Config, store mem.Store[room_models.Room], log *logger.Logger) services.RoomServiceInterface {
	svc := services.NewRoomService(store, cfg.RoomTTL, log)

	stop := make(chan struct{})
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := svc.SweepExpired(); n > 0 {
							log.Info("expired rooms removed", "count", n)
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
	return svc
}
