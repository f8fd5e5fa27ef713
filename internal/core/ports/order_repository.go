package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate
	// without concurrency guarantees. Use UpdateWithStatusGuard for
	// transitions that may race.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithStatusGuard persists the aggregate only if the stored row
	// still holds expectedStatus. When another writer got there first, no
	// row matches and a conflict is returned. This is how at most one
	// courier wins a pending order.
	UpdateWithStatusGuard(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
