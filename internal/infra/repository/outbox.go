package repository

import (
	"context"
	"time"

	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	enqueueEventSQL = `INSERT INTO booking_events (topic, payload, status, run_at)
VALUES ($1, $2, 'pending', $3)`

	// SKIP LOCKED lets several relays drain the table without handing the
	// same row to two of them.
	claimPendingEventsSQL = `SELECT id, topic, payload, attempts
FROM booking_events
WHERE status = 'pending' AND run_at <= $1
ORDER BY run_at, created_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

	markEventSentSQL = `UPDATE booking_events
SET status = 'sent', attempts = attempts + 1, last_error = NULL, updated_at = $2
WHERE id = $1`

	markEventRetrySQL = `UPDATE booking_events
SET attempts = attempts + 1, last_error = $2, run_at = $3, updated_at = $4
WHERE id = $1`

	markEventFailedSQL = `UPDATE booking_events
SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = $3
WHERE id = $1`
)

// OutboxEvent is a booking event waiting to be published.
type OutboxEvent struct {
	ID       uuid.UUID
	Topic    string
	Payload  []byte
	Attempts int
}

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(db db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, enqueueEventSQL, topic, payload, pgtype.Timestamptz{Time: runAt, Valid: true})
	if err != nil {
		return infra.WrapRepoErr(ctx, "failed to enqueue booking event", err)
	}
	return nil
}

func (r *OutboxRepository) ClaimPending(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.Query(ctx, claimPendingEventsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, "failed to claim booking events", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (OutboxEvent, error) {
		var ev OutboxEvent
		var attempts int32
		err := row.Scan(&ev.ID, &ev.Topic, &ev.Payload, &attempts)
		ev.Attempts = int(attempts)
		return ev, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, "failed to scan booking events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	if _, err := r.db.Exec(ctx, markEventSentSQL, id, now); err != nil {
		return infra.WrapRepoErr(ctx, "failed to mark booking event sent", err)
	}
	return nil
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uuid.UUID, lastErr string, runAt, now time.Time) error {
	if _, err := r.db.Exec(ctx, markEventRetrySQL, id, lastErr, runAt, now); err != nil {
		return infra.WrapRepoErr(ctx, "failed to reschedule booking event", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastErr string, now time.Time) error {
	if _, err := r.db.Exec(ctx, markEventFailedSQL, id, lastErr, now); err != nil {
		return infra.WrapRepoErr(ctx, "failed to mark booking event failed", err)
	}
	return nil
}
