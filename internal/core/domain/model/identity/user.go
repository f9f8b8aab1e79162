// Package identity describes users as seen by the order service: a verified id,
// a role and contact details. Authentication itself happens elsewhere.
package identity

import (
	"strings"

	"marketplace/internal/core/domain/model/kernel"
)

// Role is the single role a user holds.
type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleShopOwner Role = "shopOwner"
	RoleDeliverer Role = "deliverer"
	RoleAdmin     Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleShopOwner, RoleDeliverer, RoleAdmin:
		return true
	}
	return false
}

// Principal is the verified caller extracted from a bearer token.
type Principal struct {
	UserID kernel.UUID
	Role   Role
	Email  string
}

// HasAnyRole reports whether the principal holds one of roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// User is a directory entry used to resolve buyers and deliverers.
type User struct {
	ID        kernel.UUID
	Role      Role
	Email     string
	FirstName string
	LastName  string
}

// DisplayName joins first and last name, falling back to the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
