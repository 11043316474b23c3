package bootstrap

import (
	"context"
	"log/slog"

	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.DBName),
		slog.Int("max_conns", int(pool.Config().MaxConns)))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("closing database pool",
				slog.Int("acquired", int(stat.AcquiredConns())),
				slog.Int("idle", int(stat.IdleConns())))
			cleanup()
			return nil
		},
	})

	return pool, nil
}
