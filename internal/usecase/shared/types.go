package shared

import (
	"ration-slot-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, built from the access token at the edge
// and passed explicitly into every use case.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
	ShopID *uuid.UUID
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

func (a Actor) IsBeneficiary() bool {
	return a.Role == user.RoleBeneficiary
}

// KeepsShop reports whether the actor is the shopkeeper of shopID.
func (a Actor) KeepsShop(shopID uuid.UUID) bool {
	return a.Role == user.RoleShopkeeper && a.ShopID != nil && *a.ShopID == shopID
}

// Booking event topics written to the outbox.
const (
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingCompleted = "booking.completed"
	TopicBookingCancelled = "booking.cancelled"
)
