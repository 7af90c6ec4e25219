package entity

import "strings"

// Role is the closed set of capabilities a principal can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return r, true
	}
	return "", false
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID   uint `json:"id"`
	Role Role `json:"role"`
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsVendor() bool { return p.Role == RoleVendor }
