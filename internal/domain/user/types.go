package user

import "errors"

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrNotBeneficiary    = errors.New("user is not a beneficiary")
	ErrInvalidFamilySize = errors.New("family members must be a positive integer")
)

type Role string

const (
	RoleBeneficiary Role = "beneficiary"
	RoleShopkeeper  Role = "shopkeeper"
	RoleAdmin       Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleBeneficiary, RoleShopkeeper, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
