package bootstrap

import (
	"conference-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	components.UseCaseModule,
	SweeperModule,
	components.HandlerModule,
)
