package bootstrap

import (
	"context"
	"log/slog"

	"conference-booking/internal/pkg/config"
	"conference-booking/internal/sweeper"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewSweepLocker,
	),
)

// NewSweepLocker uses Redis when REDIS_ADDR is set and a process-local lock otherwise.
func NewSweepLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) sweeper.Locker {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, sweep lock is process-local")
		return sweeper.LocalLocker{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return sweeper.NewRedisLocker(client)
}
