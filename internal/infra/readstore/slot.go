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
	slotByIDSQL    = `SELECT ` + converter.SlotColumns + ` FROM slots WHERE id = $1`
	slotsByShopSQL = `SELECT ` + converter.SlotColumns + ` FROM slots WHERE shop_id = $1 ORDER BY slot_date, time_window, created_at`
	allSlotsSQL    = `SELECT ` + converter.SlotColumns + ` FROM slots ORDER BY slot_date, shop_id, time_window, created_at`
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(db db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: db}
}

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	var row converter.SlotRow
	if err := r.db.QueryRow(ctx, slotByIDSQL, id).Scan(row.Dest()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find slot by ID", err)
	}
	return converter.SlotToView(row), nil
}

func (r *SlotReadStore) FindByShop(ctx context.Context, shopID uuid.UUID) ([]*queries.SlotView, error) {
	return r.list(ctx, "failed to list slots by shop", slotsByShopSQL, shopID)
}

func (r *SlotReadStore) FindAll(ctx context.Context) ([]*queries.SlotView, error) {
	return r.list(ctx, "failed to list slots", allSlotsSQL)
}

func (r *SlotReadStore) list(ctx context.Context, msg, sql string, args ...any) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, msg, err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.SlotView, error) {
		var sr converter.SlotRow
		if err := row.Scan(sr.Dest()...); err != nil {
			return nil, err
		}
		return converter.SlotToView(sr), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, msg, err)
	}
	return views, nil
}
