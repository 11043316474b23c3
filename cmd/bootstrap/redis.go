package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"ration-slot-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient returns nil when Redis is disabled or unreachable at
// startup; the rate limiter then keeps its buckets in process.
func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-process rate limiting",
			slog.String("addr", cfg.Addr),
			slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}
