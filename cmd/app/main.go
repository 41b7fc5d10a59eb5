package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"moments/cmd/fx/account_fx"
	"moments/cmd/fx/activity_fx"
	"moments/cmd/fx/config_fx"
	"moments/cmd/fx/controllers_fx"
	"moments/cmd/fx/db_fx"
	"moments/cmd/fx/geocode_fx"
	"moments/cmd/fx/mail_fx"
	"moments/cmd/fx/memcache_fx"
	"moments/cmd/fx/notification_fx"
	"moments/cmd/fx/room_fx"
	"moments/internal/api/controllers"
	"moments/internal/config"
	"moments/pkg/logger"
	"moments/pkg/middleware"
	"moments/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Desugar()}
		}),

		config_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		notification_fx.Module,
		activity_fx.Module,
		account_fx.Module,
		memcache_fx.Module,
		room_fx.Module,
		geocode_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", "addr", srv.Addr, "storage", cfg.StorageDriver)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config config.Config
	Log    *logger.Logger
	Issuer *utils.TokenIssuer

	Activities    *controllers.ActivityController
	Notifications *controllers.NotificationController
	Accounts      *controllers.AccountController
	Rooms         *controllers.RoomController
	Calendar      *controllers.CalendarController
	Locations     *controllers.LocationController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(p.Issuer, false))

	// writes need a session only when REQUIRE_SESSION is on
	write := []gin.HandlerFunc{}
	if p.Config.RequireSession {
		write = append(write, middleware.RequireSession())
	}
	with := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	api.POST("/login", p.Accounts.Login)
	api.GET("/me", middleware.RequireSession(), p.Accounts.Me)

	api.GET("/activities", p.Activities.ListActivities)
	api.POST("/activities", with(p.Activities.CreateActivity)...)
	api.PUT("/activities", with(p.Activities.UpdateActivity)...)
	api.DELETE("/activities", with(p.Activities.DeleteActivity)...)

	api.POST("/send-notification", with(p.Notifications.SendEmail)...)
	api.POST("/send-whatsapp", with(p.Notifications.SendSMS)...)

	api.GET("/calendar", p.Calendar.GetCalendar)
	api.GET("/geocode", p.Locations.Geocode)
	api.GET("/locations", p.Locations.ListLocations)

	rooms := api.Group("/rooms")
	rooms.POST("", p.Rooms.CreateRoom)
	rooms.GET("/:id", p.Rooms.GetRoom)
	rooms.POST("/:id/join", p.Rooms.Join)
	rooms.POST("/:id/leave", p.Rooms.Leave)
	rooms.POST("/:id/ratings", p.Rooms.Rate)
	rooms.POST("/:id/reveal", p.Rooms.Reveal)
	rooms.POST("/:id/choose", p.Rooms.Choose)
}
