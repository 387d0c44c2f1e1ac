package entity

import "strings"

// Role is the marketplace role carried by an account.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller:
		return true
	default:
		return false
	}
}

// ParseRole reads a role as the auth service spells it. Case and a
// "ROLE_" prefix are ignored. Unknown roles yield "".
func ParseRole(s string) Role {
	role := Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_"))
	if !role.IsValid() {
		return ""
	}

	return role
}
