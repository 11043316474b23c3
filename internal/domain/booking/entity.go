package booking

import (
	"time"

	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"

	"github.com/google/uuid"
)

// Booking is the record of a successful reservation. Date and time window
// are copied from the slot at creation and never follow later slot changes.
type Booking struct {
	id               uuid.UUID
	beneficiary      Party
	shop             Party
	slotID           uuid.UUID
	date             time.Time
	timeWindow       string
	entitlement      stock.Stock
	status           Status
	verificationCode VerificationCode
	createdAt        time.Time
	updatedAt        time.Time
}

func NewBooking(beneficiary, shop Party, s *slot.Slot, entitlement stock.Stock, now time.Time) (*Booking, error) {
	if beneficiary.ID == uuid.Nil || shop.ID == uuid.Nil || s == nil {
		return nil, ErrMissingParty
	}
	if entitlement.Validate() != nil || entitlement.IsZero() {
		return nil, ErrInvalidEntitlement
	}
	code, err := NewVerificationCode(now, beneficiary.ID)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:               uuid.New(),
		beneficiary:      beneficiary,
		shop:             shop,
		slotID:           s.ID(),
		date:             s.Date(),
		timeWindow:       s.TimeWindow().String(),
		entitlement:      entitlement,
		status:           StatusConfirmed,
		verificationCode: code,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	beneficiary, shop Party,
	slotID uuid.UUID,
	date time.Time,
	timeWindow string,
	entitlement stock.Stock,
	status Status,
	verificationCode string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		beneficiary:      beneficiary,
		shop:             shop,
		slotID:           slotID,
		date:             date,
		timeWindow:       timeWindow,
		entitlement:      entitlement,
		status:           status,
		verificationCode: ReconstructVerificationCode(verificationCode),
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                      { return b.id }
func (b *Booking) Beneficiary() Party                 { return b.beneficiary }
func (b *Booking) Shop() Party                        { return b.shop }
func (b *Booking) SlotID() uuid.UUID                  { return b.slotID }
func (b *Booking) Date() time.Time                    { return b.date }
func (b *Booking) TimeWindow() string                 { return b.timeWindow }
func (b *Booking) Entitlement() stock.Stock           { return b.entitlement }
func (b *Booking) Status() Status                     { return b.status }
func (b *Booking) VerificationCode() VerificationCode { return b.verificationCode }
func (b *Booking) CreatedAt() time.Time               { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time               { return b.updatedAt }

// TransitionTo moves a confirmed booking to a terminal status.
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if b.status != StatusConfirmed || !next.IsTerminal() {
		return ErrInvalidStatusTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// ReleasesStock reports whether moving to next hands the entitlement back to
// the slot.
func ReleasesStock(next Status) bool {
	return next == StatusCancelled
}
