package repository

import (
	"context"

	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/converter"
	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertSlotSQL = `INSERT INTO slots (` + converter.SlotColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	// The version guard makes this a compare-and-swap: zero rows affected
	// means someone else wrote the slot since it was read.
	updateSlotCountersSQL = `UPDATE slots
SET booked_count = $3,
    available_rice = $4,
    available_wheat = $5,
    available_sugar = $6,
    available_kerosene = $7,
    version = version + 1,
    updated_at = $8
WHERE id = $1 AND version = $2`

	findSlotByIDSQL = `SELECT ` + converter.SlotColumns + ` FROM slots WHERE id = $1`
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(db db.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	limit, avail := s.StockLimit(), s.AvailableStock()
	_, err := r.db.Exec(ctx, insertSlotSQL,
		s.ID(), s.ShopID(), pgconv.DateToPgtype(s.Date()), s.TimeWindow().String(),
		s.MaxCapacity(), s.BookedCount(),
		limit.Rice, limit.Wheat, limit.Sugar, limit.Kerosene,
		avail.Rice, avail.Wheat, avail.Sugar, avail.Kerosene,
		s.Version(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(ctx, "failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) UpdateCounters(ctx context.Context, s *slot.Slot) (bool, error) {
	avail := s.AvailableStock()
	tag, err := r.db.Exec(ctx, updateSlotCountersSQL,
		s.ID(), s.Version(), s.BookedCount(),
		avail.Rice, avail.Wheat, avail.Sugar, avail.Kerosene,
		s.UpdatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr(ctx, "failed to update slot counters", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	var row converter.SlotRow
	if err := r.db.QueryRow(ctx, findSlotByIDSQL, id).Scan(row.Dest()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find slot by ID", err)
	}
	return converter.SlotToDomain(row), nil
}
