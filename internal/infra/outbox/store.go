package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ration-slot-booking/internal/infra/repository"
	"ration-slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queue is the transactional view of the booking_events table the relay
// works against.
type Queue interface {
	ClaimPending(ctx context.Context, now time.Time, limit int) ([]repository.OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, lastErr string, runAt, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastErr string, now time.Time) error
}

type Store interface {
	Within(ctx context.Context, fn func(ctx context.Context, q Queue) error) error
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Within holds the claimed rows locked until fn returns.
func (s *PostgresStore) Within(ctx context.Context, fn func(ctx context.Context, q Queue) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Wrap(err, "begin outbox transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("outbox rollback failed", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, repository.NewOutboxRepository(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
