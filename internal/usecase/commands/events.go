package commands

import (
	"context"
	"encoding/json"
	"time"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type stockPayload struct {
	Rice     float64 `json:"rice"`
	Wheat    float64 `json:"wheat"`
	Sugar    float64 `json:"sugar"`
	Kerosene float64 `json:"kerosene"`
}

// BookingEvent is the outbox payload published for every booking state
// change.
type BookingEvent struct {
	BookingID        uuid.UUID    `json:"booking_id"`
	SlotID           uuid.UUID    `json:"slot_id"`
	ShopID           uuid.UUID    `json:"shop_id"`
	BeneficiaryID    uuid.UUID    `json:"beneficiary_id"`
	Date             string       `json:"date"`
	TimeWindow       string       `json:"time_window"`
	Status           string       `json:"status"`
	VerificationCode string       `json:"verification_code"`
	Entitlement      stockPayload `json:"entitlement"`
	OccurredAt       time.Time    `json:"occurred_at"`
}

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, now time.Time) error {
	ent := b.Entitlement()
	payload, err := json.Marshal(BookingEvent{
		BookingID:        b.ID(),
		SlotID:           b.SlotID(),
		ShopID:           b.Shop().ID,
		BeneficiaryID:    b.Beneficiary().ID,
		Date:             b.Date().Format(slot.DateLayout),
		TimeWindow:       b.TimeWindow(),
		Status:           b.Status().String(),
		VerificationCode: b.VerificationCode().String(),
		Entitlement: stockPayload{
			Rice:     ent.Rice,
			Wheat:    ent.Wheat,
			Sugar:    ent.Sugar,
			Kerosene: ent.Kerosene,
		},
		OccurredAt: now.UTC(),
	})
	if err != nil {
		return err
	}
	return tx.Outbox().Enqueue(ctx, topic, payload, now)
}
