package converter

import (
	"ration-slot-booking/internal/domain/shop"
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/pkg/pgconv"
	"ration-slot-booking/internal/pkg/ptr"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const UserColumns = `id, name, role, family_members, shop_id`

type UserRow struct {
	ID            uuid.UUID
	Name          string
	Role          string
	FamilyMembers pgtype.Int4
	ShopID        pgtype.UUID
}

func (r *UserRow) Dest() []any {
	return []any{&r.ID, &r.Name, &r.Role, &r.FamilyMembers, &r.ShopID}
}

func UserToDomain(r UserRow) (*user.User, error) {
	role, err := user.NewRole(r.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(r.ID, r.Name, role, ptr.IntFromPgtype(r.FamilyMembers), pgconv.UUIDPtrFromPgtype(r.ShopID)), nil
}

func UserToView(r UserRow) *queries.UserView {
	return &queries.UserView{
		ID:            r.ID,
		Name:          r.Name,
		Role:          r.Role,
		FamilyMembers: ptr.IntFromPgtype(r.FamilyMembers),
		ShopID:        pgconv.UUIDPtrFromPgtype(r.ShopID),
	}
}

const ShopColumns = `id, name, address, shopkeeper_id, status`

type ShopRow struct {
	ID           uuid.UUID
	Name         string
	Address      string
	ShopkeeperID pgtype.UUID
	Status       string
}

func (r *ShopRow) Dest() []any {
	return []any{&r.ID, &r.Name, &r.Address, &r.ShopkeeperID, &r.Status}
}

func ShopToDomain(r ShopRow) (*shop.Shop, error) {
	status, err := shop.NewStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return shop.ReconstructShop(r.ID, r.Name, r.Address, pgconv.UUIDPtrFromPgtype(r.ShopkeeperID), status), nil
}

func ShopToView(r ShopRow) *queries.ShopView {
	return &queries.ShopView{
		ID:           r.ID,
		Name:         r.Name,
		Address:      r.Address,
		ShopkeeperID: pgconv.UUIDPtrFromPgtype(r.ShopkeeperID),
		Status:       r.Status,
	}
}
