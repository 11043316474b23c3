package request

import (
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/usecase/commands"
)

type StockRequest struct {
	Rice     float64 `json:"rice"`
	Wheat    float64 `json:"wheat"`
	Sugar    float64 `json:"sugar"`
	Kerosene float64 `json:"kerosene"`
}

// ToStock maps the request body; an absent body maps to an empty Stock.
func (r *StockRequest) ToStock() stock.Stock {
	if r == nil {
		return stock.Stock{}
	}
	return stock.Stock{Rice: r.Rice, Wheat: r.Wheat, Sugar: r.Sugar, Kerosene: r.Kerosene}
}

type CreateSlotRequest struct {
	Date        string        `json:"date" binding:"required"`
	TimeWindow  string        `json:"time_window" binding:"required"`
	MaxCapacity int           `json:"max_capacity" binding:"required"`
	StockLimit  *StockRequest `json:"stock_limit" binding:"required"`
}

func (r CreateSlotRequest) ToInput() commands.CreateSlotInput {
	return commands.CreateSlotInput{
		Date:        r.Date,
		TimeWindow:  r.TimeWindow,
		MaxCapacity: r.MaxCapacity,
		StockLimit:  r.StockLimit.ToStock(),
	}
}
