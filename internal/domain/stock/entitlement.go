package stock

import "errors"

var ErrInvalidFamilySize = errors.New("family members must be a positive integer")

// DefaultFamilyMembers applies when a beneficiary record has no family size.
const DefaultFamilyMembers = 4

// PerPersonAllowance is the monthly ration owed for each family member.
var PerPersonAllowance = Stock{
	Rice:     5,
	Wheat:    3,
	Sugar:    1,
	Kerosene: 0.5,
}

// ComputeEntitlement scales the per-person allowance by familyMembers.
// Callers validate the family size; see EntitlementFor.
func ComputeEntitlement(familyMembers int) Stock {
	return PerPersonAllowance.Scale(float64(familyMembers))
}

// EntitlementFor resolves the entitlement for a stored family size, falling
// back to DefaultFamilyMembers when none is recorded.
func EntitlementFor(familyMembers *int) (Stock, error) {
	n := DefaultFamilyMembers
	if familyMembers != nil {
		n = *familyMembers
	}
	if n < 1 {
		return Stock{}, ErrInvalidFamilySize
	}
	return ComputeEntitlement(n), nil
}
