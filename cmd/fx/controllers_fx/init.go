package controllers_fx

import (
	"go.uber.org/fx"

	"moments/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewActivityController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewRoomController),
	fx.Provide(controllers.NewCalendarController),
	fx.Provide(controllers.NewLocationController))
