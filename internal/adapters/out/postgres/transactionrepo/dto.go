// Package transactionrepo provides data transfer objects and mapping functions
// for ledger persistence. Ledger rows are append-mostly: only a pending
// deposit's status ever changes after insert.
package transactionrepo

import (
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transaction"
)

// TransactionDTO represents the database structure for persisting ledger entries.
type TransactionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(32);not null"`
	Amount      float64   `gorm:"not null"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
	ProofRef    string    `gorm:"type:varchar(512)"`
	Description string    `gorm:"type:varchar(512)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger entries.
func (TransactionDTO) TableName() string {
	return "transactions"
}

// fromDomain converts a transaction to its database representation.
func fromDomain(aggregate *transaction.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          aggregate.ID().Bytes(),
		UserID:      aggregate.UserID().Bytes(),
		Type:        aggregate.Type().String(),
		Amount:      aggregate.Amount(),
		Status:      aggregate.Status().String(),
		ProofRef:    aggregate.ProofRef(),
		Description: aggregate.Description(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a transaction using RestoreTransaction.
func toDomain(dto TransactionDTO) (*transaction.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	txType, err := transaction.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	status, err := transaction.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return transaction.RestoreTransaction(
		id,
		userID,
		txType,
		dto.Amount,
		status,
		dto.ProofRef,
		dto.Description,
		dto.CreatedAt,
	)
}
