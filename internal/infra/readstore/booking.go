package readstore

import (
	"context"

	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/converter"
	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/pgconv"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	bookingByIDSQL     = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1`
	bookingsByUserSQL  = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE beneficiary_id = $1 ORDER BY created_at DESC, id`
	bookingsByShopSQL  = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE shop_id = $1 ORDER BY created_at DESC, id`
	allBookingsSQL     = `SELECT ` + converter.BookingColumns + ` FROM bookings ORDER BY created_at DESC, id`
	bookingByCodeSQL   = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE shop_id = $1 AND verification_code = $2`
	bookingByShopIDSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE shop_id = $1 AND id = $2`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return r.one(ctx, bookingByIDSQL, id)
}

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	return r.list(ctx, "failed to list bookings by user", bookingsByUserSQL, userID)
}

func (r *BookingReadStore) FindByShop(ctx context.Context, shopID uuid.UUID) ([]*queries.BookingView, error) {
	return r.list(ctx, "failed to list bookings by shop", bookingsByShopSQL, shopID)
}

func (r *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	return r.list(ctx, "failed to list bookings", allBookingsSQL)
}

// FindByShopAndCode tries the code as a booking id first when it parses as
// one, then as a verification code.
func (r *BookingReadStore) FindByShopAndCode(ctx context.Context, shopID uuid.UUID, code string) (*queries.BookingView, error) {
	if id, err := uuid.Parse(code); err == nil {
		v, err := r.one(ctx, bookingByShopIDSQL, shopID, id)
		if err == nil || !infra.IsKind(err, infra.KindNotFound) {
			return v, err
		}
	}
	return r.one(ctx, bookingByCodeSQL, shopID, code)
}

func (r *BookingReadStore) one(ctx context.Context, sql string, args ...any) (*queries.BookingView, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, sql, args...).Scan(row.Dest()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find booking", err)
	}
	return converter.BookingToView(row), nil
}

func (r *BookingReadStore) list(ctx context.Context, msg, sql string, args ...any) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, msg, err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookingView, error) {
		var br converter.BookingRow
		if err := row.Scan(br.Dest()...); err != nil {
			return nil, err
		}
		return converter.BookingToView(br), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, msg, err)
	}
	return views, nil
}
