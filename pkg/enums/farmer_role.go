package enums

import "fmt"

// FarmerRole distinguishes regular farmers from platform administrators.
type FarmerRole string

const (
	FarmerRoleFarmer FarmerRole = "farmer"
	FarmerRoleAdmin  FarmerRole = "admin"
)

var validFarmerRoles = []FarmerRole{
	FarmerRoleFarmer,
	FarmerRoleAdmin,
}

// String implements fmt.Stringer.
func (r FarmerRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known FarmerRole.
func (r FarmerRole) IsValid() bool {
	for _, candidate := range validFarmerRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseFarmerRole converts raw input into a FarmerRole.
func ParseFarmerRole(value string) (FarmerRole, error) {
	for _, candidate := range validFarmerRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid farmer role %q", value)
}
