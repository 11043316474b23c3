package components

import (
	"ration-slot-booking/internal/handler"
	"ration-slot-booking/internal/handler/api"
	"ration-slot-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	handlerMiddlewareModule,
	handlerAPIModule,
	fx.Invoke(handler.NewRouter),
)

var handlerMiddlewareModule = fx.Module("handler/middleware",
	fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiter,
	),
)

var handlerAPIModule = fx.Module("handler/api",
	fx.Provide(
		api.NewSlotHandler,
		api.NewBookingHandler,
		api.NewEntitlementHandler,
	),
)
