//go:build unit || integration || e2e

package builder

import (
	"time"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	BeneficiaryID    uuid.UUID
	BeneficiaryName  string
	ShopID           uuid.UUID
	ShopName         string
	SlotID           uuid.UUID
	Date             string
	TimeWindow       string
	Entitlement      stock.Stock
	Status           booking.Status
	VerificationCode string
	Now              time.Time
}

func NewBookingBuilder() *BookingBuilder {
	beneficiaryID := uuid.New()
	return &BookingBuilder{
		ID:               uuid.New(),
		BeneficiaryID:    beneficiaryID,
		BeneficiaryName:  "Lakshmi Devi",
		ShopID:           uuid.New(),
		ShopName:         "FPS Ward 12",
		SlotID:           uuid.New(),
		Date:             "2025-03-01",
		TimeWindow:       "09:00-11:00",
		Entitlement:      stock.ComputeEntitlement(stock.DefaultFamilyMembers),
		Status:           booking.StatusConfirmed,
		VerificationCode: "BKG-1740823200000000000-" + beneficiaryID.String()[:8] + "-0011223344556677",
		Now:              time.Date(2025, 2, 25, 8, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

// ForSlot copies the slot identity and schedule the way a reservation does.
func (b *BookingBuilder) ForSlot(s *SlotBuilder) *BookingBuilder {
	b.SlotID = s.ID
	b.ShopID = s.ShopID
	b.Date = s.Date
	b.TimeWindow = s.TimeWindow
	return b
}

func (b *BookingBuilder) Build() *booking.Booking {
	d, _ := time.Parse(time.DateOnly, b.Date)
	return booking.ReconstructBooking(
		b.ID,
		booking.Party{ID: b.BeneficiaryID, Name: b.BeneficiaryName},
		booking.Party{ID: b.ShopID, Name: b.ShopName},
		b.SlotID, d, b.TimeWindow,
		b.Entitlement, b.Status, b.VerificationCode,
		b.Now, b.Now,
	)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:               b.ID,
		BeneficiaryID:    b.BeneficiaryID,
		BeneficiaryName:  b.BeneficiaryName,
		ShopID:           b.ShopID,
		ShopName:         b.ShopName,
		SlotID:           b.SlotID,
		Date:             b.Date,
		TimeWindow:       b.TimeWindow,
		Entitlement:      queries.ToStockView(b.Entitlement),
		Status:           b.Status.String(),
		VerificationCode: b.VerificationCode,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}
