package response

import (
	"ration-slot-booking/internal/usecase/queries"
)

type BookingResponse struct {
	ID               string        `json:"id"`
	BeneficiaryID    string        `json:"beneficiary_id"`
	BeneficiaryName  string        `json:"beneficiary_name"`
	ShopID           string        `json:"shop_id"`
	ShopName         string        `json:"shop_name"`
	SlotID           string        `json:"slot_id"`
	Date             string        `json:"date"`
	TimeWindow       string        `json:"time_window"`
	Entitlement      StockResponse `json:"entitlement"`
	Status           string        `json:"status"`
	VerificationCode string        `json:"verification_code"`
	CreatedAt        int64         `json:"created_at"`
	UpdatedAt        int64         `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	return copyInto[BookingResponse](v)
}

func FromBookingViews(vs []*queries.BookingView) ([]*BookingResponse, error) {
	return copyList[BookingResponse](vs)
}

// VerifyBookingResponse wraps the matched booking the way the counter UI
// expects it.
type VerifyBookingResponse struct {
	Valid   bool             `json:"valid"`
	Booking *BookingResponse `json:"booking"`
}

type EntitlementResponse struct {
	FamilyMembers int           `json:"family_members"`
	Defaulted     bool          `json:"defaulted"`
	Entitlement   StockResponse `json:"entitlement"`
}

func FromEntitlementView(v *queries.EntitlementView) (*EntitlementResponse, error) {
	return copyInto[EntitlementResponse](v)
}
