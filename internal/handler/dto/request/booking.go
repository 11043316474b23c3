package request

import (
	"ration-slot-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ShopID uuid.UUID `json:"shop_id" binding:"required"`
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

func (r CreateBookingRequest) ToInput() commands.ReserveInput {
	return commands.ReserveInput{ShopID: r.ShopID, SlotID: r.SlotID}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type VerifyBookingRequest struct {
	Code string `json:"code" binding:"required"`
}
