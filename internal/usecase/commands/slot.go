package commands

import (
	"context"
	"log/slog"

	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSlotInput struct {
	Date        string
	TimeWindow  string
	MaxCapacity int
	StockLimit  stock.Stock
}

type CreateSlotResult struct {
	SlotID uuid.UUID
}

type SlotCommands interface {
	CreateSlot(ctx context.Context, actor shared.Actor, shopID uuid.UUID, in CreateSlotInput) (*CreateSlotResult, error)
}

type slotUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewSlotUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) SlotCommands {
	return &slotUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

// CreateSlot opens a new slot at the actor's own shop with its full stock
// limit available. Identical date and window pairs are allowed.
func (uc *slotUseCaseImpl) CreateSlot(ctx context.Context, actor shared.Actor, shopID uuid.UUID, in CreateSlotInput) (*CreateSlotResult, error) {
	if !actor.KeepsShop(shopID) {
		return nil, forbidden("only the shop's shopkeeper can create slots")
	}

	if _, err := uc.uow.CommandReads().ShopByID(ctx, shopID); err != nil {
		return nil, notFound(err, "shop")
	}

	s, err := slot.NewSlot(shopID, in.Date, in.TimeWindow, in.MaxCapacity, in.StockLimit, uc.clock.Now())
	if err != nil {
		return nil, invalid(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("slot created",
		slog.String("slot_id", s.ID().String()),
		slog.String("shop_id", shopID.String()),
		slog.String("date", s.DateString()),
		slog.Int("max_capacity", s.MaxCapacity()))

	return &CreateSlotResult{SlotID: s.ID()}, nil
}
