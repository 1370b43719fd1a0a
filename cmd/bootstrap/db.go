package bootstrap

import (
	"context"
	"log/slog"

	"conference-booking/internal/infra/db"
	"conference-booking/internal/infra/memory"
	"conference-booking/internal/infra/uow"
	"conference-booking/internal/pkg/config"
	"conference-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the store named by STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using the in-memory store, state is lost on restart")
		return memory.NewUoW(), nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return nil, err
	}
	return uow.NewPostgresUoW(pool, cfg.Engine, logger), nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
