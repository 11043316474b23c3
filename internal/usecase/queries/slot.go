package queries

import (
	"context"

	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]*SlotView, error)
	FindAll(ctx context.Context) ([]*SlotView, error)
}

type SlotQueries interface {
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*SlotView, error)
	ListAll(ctx context.Context, actor shared.Actor) ([]*SlotView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
}

type slotQueriesImpl struct {
	slots SlotReadStore
	shops ShopReadStore
}

func NewSlotQueries(slots SlotReadStore, shops ShopReadStore) SlotQueries {
	return &slotQueriesImpl{slots: slots, shops: shops}
}

// ListByShop returns the shop's slots ordered by date then time window. An
// unknown shop is NotFound rather than an empty list.
func (q *slotQueriesImpl) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*SlotView, error) {
	if _, err := q.shops.FindByID(ctx, shopID); err != nil {
		return nil, notFound(err, "shop")
	}
	rows, err := q.slots.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *slotQueriesImpl) ListAll(ctx context.Context, actor shared.Actor) ([]*SlotView, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("only admins can list every slot")
	}
	return q.slots.FindAll(ctx)
}

func (q *slotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error) {
	v, err := q.slots.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "slot")
	}
	return v, nil
}
