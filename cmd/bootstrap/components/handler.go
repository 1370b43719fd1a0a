package components

import (
	"conference-booking/internal/handler"
	"conference-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewDirectoryHandler,
	),
	fx.Invoke(handler.NewRouter),
)
