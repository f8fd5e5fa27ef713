package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user aggregate.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetAllEnabledByRole retrieves every enabled user holding the given role.
	// Fanout recipients are recomputed through this method on every
	// broadcast; eligibility is never cached.
	GetAllEnabledByRole(ctx context.Context, role user.Role) ([]*user.User, error)

	// CreditBalance atomically increases a user's balance by amount.
	// Executed inside the unit of work transaction so the credit commits
	// together with the transaction status change.
	CreditBalance(ctx context.Context, id kernel.UUID, amount float64) error
}
