package response

import (
	"ration-slot-booking/internal/usecase/queries"
)

type StockResponse struct {
	Rice     float64 `json:"rice"`
	Wheat    float64 `json:"wheat"`
	Sugar    float64 `json:"sugar"`
	Kerosene float64 `json:"kerosene"`
}

type SlotResponse struct {
	ID             string        `json:"id"`
	ShopID         string        `json:"shop_id"`
	Date           string        `json:"date"`
	TimeWindow     string        `json:"time_window"`
	MaxCapacity    int           `json:"max_capacity"`
	BookedCount    int           `json:"booked_count"`
	StockLimit     StockResponse `json:"stock_limit"`
	AvailableStock StockResponse `json:"available_stock"`
	CreatedAt      int64         `json:"created_at"`
	UpdatedAt      int64         `json:"updated_at"`
}

func FromSlotView(v *queries.SlotView) (*SlotResponse, error) {
	return copyInto[SlotResponse](v)
}

func FromSlotViews(vs []*queries.SlotView) ([]*SlotResponse, error) {
	return copyList[SlotResponse](vs)
}
