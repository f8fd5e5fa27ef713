package user

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role represents the capability class of a user within the marketplace.
// It determines which operations the user may invoke: clients create orders,
// couriers accept and fulfill them, admins review deposits and manage roles.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleClient is the default role: may create, cancel, and rate own orders
	// and request wallet deposits.
	RoleClient

	// RoleAdmin may approve or reject deposits, correct order statuses, and
	// manage roles of other users.
	RoleAdmin

	// RoleCourier may accept pending orders and fulfill deliveries.
	RoleCourier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleClient:  "client",
		RoleAdmin:   "admin",
		RoleCourier: "courier",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleClient:  "client",
		RoleAdmin:   "admin",
		RoleCourier: "courier",
	}
}

// RoleFromString parses a role from its string representation.
// Returns an error for anything other than "client", "admin", or "courier".
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: client, admin, courier.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase name of the role.
// Returns "unknown" for invalid role values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
