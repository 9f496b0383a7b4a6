package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is the coarse permission set an authenticated caller holds.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

// ParseRole accepts admin, driver or customer in any case.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	switch role {
	case RoleAdmin, RoleDriver, RoleCustomer:
		return role, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Principal is the caller identity handed over by the identity provider.
// It is trusted as-is.
type Principal struct {
	UserID UUID
	Role   Role
}

func NewPrincipal(userID UUID, role Role) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Principal{}, err
	}
	return Principal{UserID: userID, Role: role}, nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
