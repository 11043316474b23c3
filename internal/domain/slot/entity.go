package slot

import (
	"time"

	"ration-slot-booking/internal/domain/stock"

	"github.com/google/uuid"
)

const DateLayout = time.DateOnly

// Slot is a bookable date and time window at one shop, holding the capacity
// and stock budget that reservations draw down.
type Slot struct {
	id             uuid.UUID
	shopID         uuid.UUID
	date           time.Time
	timeWindow     TimeWindow
	maxCapacity    int
	bookedCount    int
	stockLimit     stock.Stock
	availableStock stock.Stock
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

func NewSlot(shopID uuid.UUID, date string, timeWindow string, maxCapacity int, stockLimit stock.Stock, now time.Time) (*Slot, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	window, err := NewTimeWindow(timeWindow)
	if err != nil {
		return nil, err
	}
	if maxCapacity < 1 || maxCapacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	limit, err := stock.New(stockLimit.Rice, stockLimit.Wheat, stockLimit.Sugar, stockLimit.Kerosene)
	if err != nil {
		return nil, err
	}

	return &Slot{
		id:             uuid.New(),
		shopID:         shopID,
		date:           d,
		timeWindow:     window,
		maxCapacity:    maxCapacity,
		bookedCount:    0,
		stockLimit:     limit,
		availableStock: limit,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructSlot(
	id, shopID uuid.UUID,
	date time.Time,
	timeWindow string,
	maxCapacity, bookedCount int,
	stockLimit, availableStock stock.Stock,
	version int64,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:             id,
		shopID:         shopID,
		date:           date,
		timeWindow:     TimeWindow{value: timeWindow},
		maxCapacity:    maxCapacity,
		bookedCount:    bookedCount,
		stockLimit:     stockLimit,
		availableStock: availableStock,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (s *Slot) ID() uuid.UUID               { return s.id }
func (s *Slot) ShopID() uuid.UUID           { return s.shopID }
func (s *Slot) Date() time.Time             { return s.date }
func (s *Slot) DateString() string          { return s.date.Format(DateLayout) }
func (s *Slot) TimeWindow() TimeWindow      { return s.timeWindow }
func (s *Slot) MaxCapacity() int            { return s.maxCapacity }
func (s *Slot) BookedCount() int            { return s.bookedCount }
func (s *Slot) StockLimit() stock.Stock     { return s.stockLimit }
func (s *Slot) AvailableStock() stock.Stock { return s.availableStock }
func (s *Slot) Version() int64              { return s.version }
func (s *Slot) CreatedAt() time.Time        { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time        { return s.updatedAt }

func (s *Slot) BelongsTo(shopID uuid.UUID) bool {
	return s.shopID == shopID
}

func (s *Slot) HasCapacity() bool {
	return s.bookedCount < s.maxCapacity
}

// CheckAdmission applies the reservation preconditions in order: capacity
// first, then stock.
func (s *Slot) CheckAdmission(entitlement stock.Stock) error {
	if !s.HasCapacity() {
		return ErrCapacityExceeded
	}
	if short := s.availableStock.Shortages(entitlement); len(short) > 0 {
		return &InsufficientStockError{Short: short}
	}
	return nil
}

// Reserve consumes one unit of capacity and the entitlement from available
// stock. The version is not bumped here; the store advances it when the
// conditional write lands.
func (s *Slot) Reserve(entitlement stock.Stock, now time.Time) error {
	if err := s.CheckAdmission(entitlement); err != nil {
		return err
	}
	s.bookedCount++
	s.availableStock = s.availableStock.Sub(entitlement)
	s.updatedAt = now
	return nil
}

// Release returns one unit of capacity and the entitlement to the slot,
// never exceeding the stock limit.
func (s *Slot) Release(entitlement stock.Stock, now time.Time) error {
	if s.bookedCount == 0 {
		return ErrReleaseEmptySlot
	}
	s.bookedCount--
	s.availableStock = s.availableStock.Add(entitlement).Min(s.stockLimit)
	s.updatedAt = now
	return nil
}
