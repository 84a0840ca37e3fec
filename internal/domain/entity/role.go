package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a customer.
	RoleUser Role = "user"
	// RoleAdmin manages the global taxonomy and other accounts.
	RoleAdmin Role = "admin"
	// RolePartner indicates a service provider.
	RolePartner Role = "partner"
)

// AllRoles lists every valid role.
var AllRoles = Roles{RoleUser, RoleAdmin, RolePartner}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RolePartner:
		return true
	default:
		return false
	}
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
