package stock

import (
	"errors"
	"math"
)

var (
	ErrNegativeQuantity = errors.New("stock quantity must not be negative")
	ErrInvalidQuantity  = errors.New("stock quantity must be a finite number")
	ErrQuantityTooLarge = errors.New("stock quantity must not exceed 999999999.999")
)

// MaxQuantity is the largest quantity a NUMERIC(12,3) column holds.
const MaxQuantity = 999_999_999.999

type Good string

const (
	Rice     Good = "rice"
	Wheat    Good = "wheat"
	Sugar    Good = "sugar"
	Kerosene Good = "kerosene"
)

// Goods lists every rationed good in a stable order.
var Goods = []Good{Rice, Wheat, Sugar, Kerosene}

// Stock is a vector of rationed quantities. Rice, wheat and sugar are in
// kilograms, kerosene in liters. Quantities are kept at gram/millilitre
// precision.
type Stock struct {
	Rice     float64
	Wheat    float64
	Sugar    float64
	Kerosene float64
}

func New(rice, wheat, sugar, kerosene float64) (Stock, error) {
	s := Stock{Rice: rice, Wheat: wheat, Sugar: sugar, Kerosene: kerosene}
	if err := s.Validate(); err != nil {
		return Stock{}, err
	}
	return s.rounded(), nil
}

func (s Stock) Validate() error {
	for _, g := range Goods {
		v := s.Get(g)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidQuantity
		}
		if v < 0 {
			return ErrNegativeQuantity
		}
		if v > MaxQuantity {
			return ErrQuantityTooLarge
		}
	}
	return nil
}

func (s Stock) Get(g Good) float64 {
	switch g {
	case Rice:
		return s.Rice
	case Wheat:
		return s.Wheat
	case Sugar:
		return s.Sugar
	case Kerosene:
		return s.Kerosene
	default:
		return 0
	}
}

// Covers reports whether every component of s is at least the matching
// component of required.
func (s Stock) Covers(required Stock) bool {
	return len(s.Shortages(required)) == 0
}

// Shortages returns the goods for which s holds less than required.
func (s Stock) Shortages(required Stock) []Good {
	var short []Good
	for _, g := range Goods {
		if round(s.Get(g)) < round(required.Get(g)) {
			short = append(short, g)
		}
	}
	return short
}

func (s Stock) Sub(o Stock) Stock {
	return Stock{
		Rice:     s.Rice - o.Rice,
		Wheat:    s.Wheat - o.Wheat,
		Sugar:    s.Sugar - o.Sugar,
		Kerosene: s.Kerosene - o.Kerosene,
	}.rounded()
}

func (s Stock) Add(o Stock) Stock {
	return Stock{
		Rice:     s.Rice + o.Rice,
		Wheat:    s.Wheat + o.Wheat,
		Sugar:    s.Sugar + o.Sugar,
		Kerosene: s.Kerosene + o.Kerosene,
	}.rounded()
}

// Min caps every component of s at the matching component of limit.
func (s Stock) Min(limit Stock) Stock {
	return Stock{
		Rice:     math.Min(s.Rice, limit.Rice),
		Wheat:    math.Min(s.Wheat, limit.Wheat),
		Sugar:    math.Min(s.Sugar, limit.Sugar),
		Kerosene: math.Min(s.Kerosene, limit.Kerosene),
	}.rounded()
}

func (s Stock) Scale(n float64) Stock {
	return Stock{
		Rice:     s.Rice * n,
		Wheat:    s.Wheat * n,
		Sugar:    s.Sugar * n,
		Kerosene: s.Kerosene * n,
	}.rounded()
}

func (s Stock) IsZero() bool {
	return s.rounded() == Stock{}
}

// IsAvailable is the admission predicate for a reservation: every good in
// available must be at least the required amount. Capacity is checked
// separately by the slot.
func IsAvailable(required, available Stock) bool {
	return available.Covers(required)
}

func (s Stock) rounded() Stock {
	return Stock{
		Rice:     round(s.Rice),
		Wheat:    round(s.Wheat),
		Sugar:    round(s.Sugar),
		Kerosene: round(s.Kerosene),
	}
}

func round(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}
