package slot

import (
	"errors"
	"math"
	"strings"

	"ration-slot-booking/internal/domain/stock"
)

var (
	ErrInvalidDate       = errors.New("slot date must be formatted as YYYY-MM-DD")
	ErrInvalidTimeWindow = errors.New("time window must be between 1 and 64 characters")
	ErrInvalidCapacity   = errors.New("max capacity must be between 1 and 2147483647")
	ErrCapacityExceeded  = errors.New("slot capacity exceeded")
	ErrInsufficientStock = errors.New("insufficient stock in slot")
	ErrReleaseEmptySlot  = errors.New("slot has no bookings to release")
)

const MaxTimeWindowLength = 64

// MaxCapacity is the largest value the INTEGER capacity column holds.
const MaxCapacity = math.MaxInt32

// InsufficientStockError names the goods that could not be covered.
type InsufficientStockError struct {
	Short []stock.Good
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, len(e.Short))
	for i, g := range e.Short {
		names[i] = string(g)
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(names, ", ")
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type TimeWindow struct {
	value string
}

func NewTimeWindow(s string) (TimeWindow, error) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > MaxTimeWindowLength {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{value: s}, nil
}

func (w TimeWindow) String() string {
	return w.value
}
