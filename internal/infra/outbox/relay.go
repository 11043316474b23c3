package outbox

import (
	"context"
	"log/slog"
	"time"

	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/config"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Relay moves committed booking events from the outbox table to the broker.
// Delivery is at least once: a crash between publish and commit resends the
// batch.
type Relay struct {
	store        Store
	publisher    Publisher
	clock        clock.Clock
	logger       *slog.Logger
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
}

func NewRelay(store Store, publisher Publisher, clk clock.Clock, cfg config.BrokerConfig, logger *slog.Logger) *Relay {
	r := &Relay{
		store:        store,
		publisher:    publisher,
		clock:        clk,
		logger:       logger,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		maxAttempts:  cfg.MaxAttempts,
	}
	if r.pollInterval <= 0 {
		r.pollInterval = 2 * time.Second
	}
	if r.batchSize <= 0 {
		r.batchSize = 50
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = 10
	}
	return r
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox dispatch failed", slog.String("error", err.Error()))
			}
		}
	}
}

// DispatchOnce publishes one batch and returns how many events were sent.
func (r *Relay) DispatchOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.store.Within(ctx, func(ctx context.Context, q Queue) error {
		now := r.clock.Now()
		events, err := q.ClaimPending(ctx, now, r.batchSize)
		if err != nil {
			return err
		}

		for _, ev := range events {
			pubErr := r.publisher.Publish(ctx, ev.Topic, ev.Payload)
			if pubErr == nil {
				if err := q.MarkSent(ctx, ev.ID, now); err != nil {
					return err
				}
				sent++
				continue
			}

			attempts := ev.Attempts + 1
			if attempts >= r.maxAttempts {
				r.logger.Error("booking event dropped after max attempts",
					slog.String("event_id", ev.ID.String()),
					slog.String("topic", ev.Topic),
					slog.Int("attempts", attempts),
					slog.String("error", pubErr.Error()))
				if err := q.MarkFailed(ctx, ev.ID, pubErr.Error(), now); err != nil {
					return err
				}
				continue
			}

			r.logger.Warn("booking event publish failed, rescheduling",
				slog.String("event_id", ev.ID.String()),
				slog.String("topic", ev.Topic),
				slog.Int("attempts", attempts),
				slog.String("error", pubErr.Error()))
			if err := q.MarkRetry(ctx, ev.ID, pubErr.Error(), now.Add(r.backoff(attempts)), now); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

func (r *Relay) backoff(attempts int) time.Duration {
	if attempts > 10 {
		attempts = 10
	}
	return time.Duration(1<<attempts) * r.pollInterval
}
