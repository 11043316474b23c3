package repository

import (
	"context"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/converter"
	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertBookingSQL = `INSERT INTO bookings (` + converter.BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	updateBookingStatusSQL = `UPDATE bookings
SET status = $2, updated_at = $3
WHERE id = $1 AND status = $4`

	findBookingByIDSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingToInfra(b)...); err != nil {
		return infra.WrapRepoErr(ctx, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL, b.ID(), b.Status().String(), b.UpdatedAt(), from.String())
	if err != nil {
		return false, infra.WrapRepoErr(ctx, "failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(row.Dest()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find booking by ID", err)
	}
	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, "invalid booking row", err, infra.KindDBFailure)
	}
	return b, nil
}
