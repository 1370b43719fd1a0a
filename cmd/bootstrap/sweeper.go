package bootstrap

import (
	"context"
	"log/slog"

	"conference-booking/internal/pkg/config"
	"conference-booking/internal/sweeper"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		sweeper.New,
	),
	fx.Invoke(startSweeper),
)

func startSweeper(lc fx.Lifecycle, s *sweeper.Sweeper, cfg config.SweeperConfig, logger *slog.Logger) {
	if !cfg.Enabled {
		logger.Info("sweeper disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
