package bootstrap

import (
	"conference-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigViews,
)

// ConfigViews narrows Config for components that only need one section.
var ConfigViews = fx.Provide(
	func(cfg config.Config) config.EngineConfig { return cfg.Engine },
	func(cfg config.Config) config.SweeperConfig { return cfg.Sweeper },
)
