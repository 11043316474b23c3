package user

import (
	"ration-slot-booking/internal/domain/stock"

	"github.com/google/uuid"
)

// User is read from the directory; registration and credentials live
// elsewhere.
type User struct {
	id            uuid.UUID
	name          string
	role          Role
	familyMembers *int
	shopID        *uuid.UUID
}

func ReconstructUser(id uuid.UUID, name string, role Role, familyMembers *int, shopID *uuid.UUID) *User {
	return &User{
		id:            id,
		name:          name,
		role:          role,
		familyMembers: familyMembers,
		shopID:        shopID,
	}
}

func (u *User) ID() uuid.UUID       { return u.id }
func (u *User) Name() string        { return u.name }
func (u *User) Role() Role          { return u.role }
func (u *User) FamilyMembers() *int { return u.familyMembers }
func (u *User) ShopID() *uuid.UUID  { return u.shopID }

// Entitlement returns the monthly ration for a beneficiary's household.
func (u *User) Entitlement() (stock.Stock, error) {
	if u.role != RoleBeneficiary {
		return stock.Stock{}, ErrNotBeneficiary
	}
	ent, err := stock.EntitlementFor(u.familyMembers)
	if err != nil {
		return stock.Stock{}, ErrInvalidFamilySize
	}
	return ent, nil
}
