package transactionrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transaction"
	"marketplace/internal/pkg/errs"
)

// GormTransactionRepository implements TransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransactionRepository creates a new GORM ledger repository.
func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ledger entry to the database.
func (r *GormTransactionRepository) Add(ctx context.Context, aggregate *transaction.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateWithStatusGuard saves a ledger entry only if the stored row still
// carries expectedStatus. Two admins deciding the same deposit race on this
// guard; the loser gets a ConflictError and must not credit the balance.
func (r *GormTransactionRepository) UpdateWithStatusGuard(
	ctx context.Context,
	aggregate *transaction.Transaction,
	expectedStatus transaction.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("transaction",
			fmt.Sprintf("transaction %s is no longer %s", aggregate.ID(), expectedStatus))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a ledger entry by ID.
func (r *GormTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transaction", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
