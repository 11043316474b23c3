//go:build unit || integration || e2e

package builder

import (
	"ration-slot-booking/internal/domain/shop"
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/pkg/ptr"
	"ration-slot-booking/internal/usecase/queries"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID            uuid.UUID
	Name          string
	Role          user.Role
	FamilyMembers *int
	ShopID        *uuid.UUID
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:            uuid.New(),
		Name:          "Lakshmi Devi",
		Role:          user.RoleBeneficiary,
		FamilyMembers: ptr.Of(4),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithFamily(members *int) *UserBuilder {
	u.FamilyMembers = members
	return u
}

func (u *UserBuilder) AsShopkeeper(shopID uuid.UUID) *UserBuilder {
	u.Name = "Ramesh Kumar"
	u.Role = user.RoleShopkeeper
	u.FamilyMembers = nil
	u.ShopID = &shopID
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Name = "District Officer"
	u.Role = user.RoleAdmin
	u.FamilyMembers = nil
	u.ShopID = nil
	return u
}

func (u *UserBuilder) BuildDomain() *user.User {
	return user.ReconstructUser(u.ID, u.Name, u.Role, u.FamilyMembers, u.ShopID)
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role.String(),
		FamilyMembers: u.FamilyMembers,
		ShopID:        u.ShopID,
	}
}

func (u *UserBuilder) BuildActor() shared.Actor {
	return shared.Actor{UserID: u.ID, Role: u.Role, ShopID: u.ShopID}
}

type ShopBuilder struct {
	ID           uuid.UUID
	Name         string
	Address      string
	ShopkeeperID *uuid.UUID
	Status       shop.Status
}

func NewShopBuilder() *ShopBuilder {
	return &ShopBuilder{
		ID:      uuid.New(),
		Name:    "FPS Ward 12",
		Address: "12 Gandhi Road, Madurai",
		Status:  shop.StatusApproved,
	}
}

func (s *ShopBuilder) With(mutate func(*ShopBuilder)) *ShopBuilder {
	mutate(s)
	return s
}

func (s *ShopBuilder) BuildDomain() *shop.Shop {
	return shop.ReconstructShop(s.ID, s.Name, s.Address, s.ShopkeeperID, s.Status)
}

func (s *ShopBuilder) BuildView() *queries.ShopView {
	return &queries.ShopView{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		ShopkeeperID: s.ShopkeeperID,
		Status:       string(s.Status),
	}
}
