package queries

import (
	"time"

	"github.com/google/uuid"
)

// StockView carries quantities of the four rationed goods.
type StockView struct {
	Rice     float64 `json:"rice"`
	Wheat    float64 `json:"wheat"`
	Sugar    float64 `json:"sugar"`
	Kerosene float64 `json:"kerosene"`
}

type SlotView struct {
	ID             uuid.UUID `json:"id"`
	ShopID         uuid.UUID `json:"shop_id"`
	Date           string    `json:"date"`
	TimeWindow     string    `json:"time_window"`
	MaxCapacity    int       `json:"max_capacity"`
	BookedCount    int       `json:"booked_count"`
	StockLimit     StockView `json:"stock_limit"`
	AvailableStock StockView `json:"available_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BookingView struct {
	ID               uuid.UUID `json:"id"`
	BeneficiaryID    uuid.UUID `json:"beneficiary_id"`
	BeneficiaryName  string    `json:"beneficiary_name"`
	ShopID           uuid.UUID `json:"shop_id"`
	ShopName         string    `json:"shop_name"`
	SlotID           uuid.UUID `json:"slot_id"`
	Date             string    `json:"date"`
	TimeWindow       string    `json:"time_window"`
	Entitlement      StockView `json:"entitlement"`
	Status           string    `json:"status"`
	VerificationCode string    `json:"verification_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UserView struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	FamilyMembers *int       `json:"family_members,omitempty"`
	ShopID        *uuid.UUID `json:"shop_id,omitempty"`
}

type ShopView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	ShopkeeperID *uuid.UUID `json:"shopkeeper_id,omitempty"`
	Status       string     `json:"status"`
}

// EntitlementView is a beneficiary's monthly ration. Defaulted is set when the
// household size was unknown and the standard size was assumed.
type EntitlementView struct {
	FamilyMembers int       `json:"family_members"`
	Defaulted     bool      `json:"defaulted"`
	Entitlement   StockView `json:"entitlement"`
}
