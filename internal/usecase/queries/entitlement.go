package queries

import (
	"context"

	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/pkg/errs"
	"ration-slot-booking/internal/pkg/ptr"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type ShopReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShopView, error)
}

type EntitlementQueries interface {
	ForActor(ctx context.Context, actor shared.Actor) (*EntitlementView, error)
}

type entitlementQueriesImpl struct {
	users UserReadStore
}

func NewEntitlementQueries(users UserReadStore) EntitlementQueries {
	return &entitlementQueriesImpl{users: users}
}

func (q *entitlementQueriesImpl) ForActor(ctx context.Context, actor shared.Actor) (*EntitlementView, error) {
	if !actor.IsBeneficiary() {
		return nil, forbidden("only beneficiaries have an entitlement")
	}
	u, err := q.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	members := ptr.ValueOr(u.FamilyMembers, stock.DefaultFamilyMembers)
	if members < 1 {
		return nil, errs.Mark(stock.ErrInvalidFamilySize, errs.ErrValidation)
	}
	ent := stock.ComputeEntitlement(members)
	return &EntitlementView{
		FamilyMembers: members,
		Defaulted:     u.FamilyMembers == nil,
		Entitlement:   ToStockView(ent),
	}, nil
}

func ToStockView(s stock.Stock) StockView {
	return StockView{Rice: s.Rice, Wheat: s.Wheat, Sugar: s.Sugar, Kerosene: s.Kerosene}
}
