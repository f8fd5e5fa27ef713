package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transaction"
)

// TransactionRepository defines the persistence contract for ledger transactions.
type TransactionRepository interface {
	// Add persists a new transaction.
	Add(ctx context.Context, aggregate *transaction.Transaction) error

	// UpdateWithStatusGuard persists the transaction only if the stored row
	// still holds expectedStatus. Concurrent admin decisions on the same
	// deposit resolve to exactly one winner; the loser gets a conflict.
	UpdateWithStatusGuard(ctx context.Context, aggregate *transaction.Transaction, expectedStatus transaction.Status) error

	// Get retrieves a transaction by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error)
}
