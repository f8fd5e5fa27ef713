package user

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrNameIsRequired is returned when attempting to create a user without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create a user without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
)

// User represents a marketplace participant: a client, an admin, or a courier.
// It is an aggregate root owning the user's identity, role, wallet balance,
// and account flags.
//
// User follows these invariants:
//   - Must have a valid unique identifier, a non-empty name and email
//   - Role is always one of client, admin, courier
//   - Balance is non-negative and only grows through Credit (no debit path
//     exists in this subsystem)
//   - Can only be created through NewUser or RestoreUser
//
// A user record is created on first authentication by the host platform and
// is never hard-deleted by this core.
type User struct {
	id       kernel.UUID
	name     string
	email    string
	role     Role
	balance  float64
	enabled  bool
	verified bool

	guard guard.ConstructorGuard
}

// NewUser creates a new User with a zero balance.
// New users start enabled and unverified.
func NewUser(id kernel.UUID, name string, email string, role Role) (*User, error) {
	u := &User{
		enabled: true,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User aggregate from persistent storage,
// including its balance and account flags.
func RestoreUser(
	id kernel.UUID,
	name string,
	email string,
	role Role,
	balance float64,
	enabled bool,
	verified bool,
) (*User, error) {
	u := &User{
		enabled:  enabled,
		verified: verified,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
		u.setBalance(balance),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's current role.
func (u *User) Role() Role {
	return u.role
}

// Balance returns the user's wallet balance in currency-agnostic units.
func (u *User) Balance() float64 {
	return u.balance
}

// IsEnabled reports whether the account is active.
// Disabled couriers are excluded from order broadcasts.
func (u *User) IsEnabled() bool {
	return u.enabled
}

// IsVerified reports whether the account passed document verification.
func (u *User) IsVerified() bool {
	return u.verified
}

// ChangeRole switches the user to a different role.
// Role changes are an admin operation enforced by the caller.
func (u *User) ChangeRole(role Role) error {
	return u.setRole(role)
}

// Credit increases the wallet balance by the given amount.
// The amount must be positive; the balance never decreases through this
// subsystem.
func (u *User) Credit(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	u.balance += amount
	return nil
}

// Enable activates the account.
func (u *User) Enable() {
	u.enabled = true
}

// Disable deactivates the account. Disabled couriers stop receiving
// order broadcasts on the next fanout; no cached eligibility is kept.
func (u *User) Disable() {
	u.enabled = false
}

// MarkVerified records that the account passed document verification.
func (u *User) MarkVerified() {
	u.verified = true
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setBalance(balance float64) error {
	if balance < 0 {
		return errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%f is negative", balance))
	}
	u.balance = balance
	return nil
}
