package converter

import (
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/pkg/pgconv"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const SlotColumns = `id, shop_id, slot_date, time_window, max_capacity, booked_count,
	limit_rice, limit_wheat, limit_sugar, limit_kerosene,
	available_rice, available_wheat, available_sugar, available_kerosene,
	version, created_at, updated_at`

type SlotRow struct {
	ID                uuid.UUID
	ShopID            uuid.UUID
	Date              pgtype.Date
	TimeWindow        string
	MaxCapacity       int32
	BookedCount       int32
	LimitRice         float64
	LimitWheat        float64
	LimitSugar        float64
	LimitKerosene     float64
	AvailableRice     float64
	AvailableWheat    float64
	AvailableSugar    float64
	AvailableKerosene float64
	Version           int64
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

// Dest returns scan targets in SlotColumns order.
func (r *SlotRow) Dest() []any {
	return []any{
		&r.ID, &r.ShopID, &r.Date, &r.TimeWindow, &r.MaxCapacity, &r.BookedCount,
		&r.LimitRice, &r.LimitWheat, &r.LimitSugar, &r.LimitKerosene,
		&r.AvailableRice, &r.AvailableWheat, &r.AvailableSugar, &r.AvailableKerosene,
		&r.Version, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *SlotRow) limit() stock.Stock {
	return stock.Stock{Rice: r.LimitRice, Wheat: r.LimitWheat, Sugar: r.LimitSugar, Kerosene: r.LimitKerosene}
}

func (r *SlotRow) available() stock.Stock {
	return stock.Stock{Rice: r.AvailableRice, Wheat: r.AvailableWheat, Sugar: r.AvailableSugar, Kerosene: r.AvailableKerosene}
}

func SlotToDomain(r SlotRow) *slot.Slot {
	return slot.ReconstructSlot(
		r.ID, r.ShopID,
		pgconv.DateFromPgtype(r.Date),
		r.TimeWindow,
		int(r.MaxCapacity), int(r.BookedCount),
		r.limit(), r.available(),
		r.Version,
		pgconv.TimeFromPgtype(r.CreatedAt), pgconv.TimeFromPgtype(r.UpdatedAt),
	)
}

func SlotToView(r SlotRow) *queries.SlotView {
	return &queries.SlotView{
		ID:             r.ID,
		ShopID:         r.ShopID,
		Date:           pgconv.DateFromPgtype(r.Date).Format(slot.DateLayout),
		TimeWindow:     r.TimeWindow,
		MaxCapacity:    int(r.MaxCapacity),
		BookedCount:    int(r.BookedCount),
		StockLimit:     queries.ToStockView(r.limit()),
		AvailableStock: queries.ToStockView(r.available()),
		CreatedAt:      pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(r.UpdatedAt),
	}
}
