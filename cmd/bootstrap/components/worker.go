package components

import (
	"context"
	"log/slog"

	"ration-slot-booking/internal/infra/broker"
	"ration-slot-booking/internal/infra/outbox"
	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(StartOutboxRelay),
)

// StartOutboxRelay runs the booking event relay for the lifetime of the app.
// Without AMQP_URL events stay in the outbox table until a broker is
// configured.
func StartOutboxRelay(lc fx.Lifecycle, cfg config.BrokerConfig, store outbox.Store, clk clock.Clock, logger *slog.Logger) {
	if cfg.URL == "" {
		logger.Info("AMQP_URL not set, outbox relay disabled")
		return
	}

	var (
		cancel    context.CancelFunc
		done      chan struct{}
		publisher *broker.AMQPPublisher
	)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			p, err := broker.NewAMQPPublisher(cfg.URL, logger)
			if err != nil {
				logger.Error("outbox relay not started", slog.String("error", err.Error()))
				return nil
			}
			publisher = p

			relay := outbox.NewRelay(store, publisher, clk, cfg, logger)
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())
			done = make(chan struct{})
			go func() {
				defer close(done)
				relay.Run(runCtx)
			}()
			logger.Info("outbox relay started", slog.Duration("poll_interval", cfg.PollInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel == nil {
				return nil
			}
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return publisher.Close()
		},
	})
}
