//go:build unit || integration || e2e

package builder

import (
	"time"

	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/handler/dto/request"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	Date        string
	TimeWindow  string
	MaxCapacity int
	BookedCount int
	StockLimit  stock.Stock
	// AvailableStock defaults to StockLimit when nil.
	AvailableStock *stock.Stock
	Version        int64
	Now            time.Time
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		ID:          uuid.New(),
		ShopID:      uuid.New(),
		Date:        "2025-03-01",
		TimeWindow:  "09:00-11:00",
		MaxCapacity: 20,
		StockLimit:  stock.Stock{Rice: 500, Wheat: 400, Sugar: 100, Kerosene: 50},
		Version:     1,
		Now:         time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithShopID(shopID uuid.UUID) *SlotBuilder {
	b.ShopID = shopID
	return b
}

func (b *SlotBuilder) WithCapacity(maxCapacity, booked int) *SlotBuilder {
	b.MaxCapacity = maxCapacity
	b.BookedCount = booked
	return b
}

func (b *SlotBuilder) available() stock.Stock {
	if b.AvailableStock != nil {
		return *b.AvailableStock
	}
	return b.StockLimit
}

// BuildNew goes through the validating constructor.
func (b *SlotBuilder) BuildNew() (*slot.Slot, error) {
	return slot.NewSlot(b.ShopID, b.Date, b.TimeWindow, b.MaxCapacity, b.StockLimit, b.Now)
}

// Build reconstructs a slot as if loaded from storage, skipping validation.
func (b *SlotBuilder) Build() *slot.Slot {
	d, err := slot.ParseDate(b.Date)
	if err != nil {
		d = time.Time{}
	}
	return slot.ReconstructSlot(
		b.ID, b.ShopID, d, b.TimeWindow,
		b.MaxCapacity, b.BookedCount,
		b.StockLimit, b.available(),
		b.Version, b.Now, b.Now,
	)
}

func (b *SlotBuilder) BuildCreateRequestDTO() request.CreateSlotRequest {
	return request.CreateSlotRequest{
		Date:        b.Date,
		TimeWindow:  b.TimeWindow,
		MaxCapacity: b.MaxCapacity,
		StockLimit: &request.StockRequest{
			Rice:     b.StockLimit.Rice,
			Wheat:    b.StockLimit.Wheat,
			Sugar:    b.StockLimit.Sugar,
			Kerosene: b.StockLimit.Kerosene,
		},
	}
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	return &queries.SlotView{
		ID:             b.ID,
		ShopID:         b.ShopID,
		Date:           b.Date,
		TimeWindow:     b.TimeWindow,
		MaxCapacity:    b.MaxCapacity,
		BookedCount:    b.BookedCount,
		StockLimit:     queries.ToStockView(b.StockLimit),
		AvailableStock: queries.ToStockView(b.available()),
		CreatedAt:      b.Now,
		UpdatedAt:      b.Now,
	}
}
