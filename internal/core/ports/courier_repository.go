// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and host capabilities such
// as caller resolution and blob storage. Adapters implement them, enabling
// dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier profiles.
type CourierRepository interface {
	// Add persists a new courier profile.
	Add(ctx context.Context, profile *courier.Profile) error

	// Update persists changes to an existing courier profile,
	// including its rating aggregate and delivery counter.
	Update(ctx context.Context, profile *courier.Profile) error

	// Get retrieves a courier profile by its identifier. Profiles share
	// their identifier with the owning courier user.
	Get(ctx context.Context, id kernel.UUID) (*courier.Profile, error)
}
