package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/kernel"
)

// GetUserTransactionsQueryHandler lists the caller's ledger entries, newest first.
type GetUserTransactionsQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetUserTransactionsQueryHandler creates a handler for the caller's ledger.
func NewGetUserTransactionsQueryHandler(db *gorm.DB, guard access.Guard) GetUserTransactionsQueryHandler {
	return GetUserTransactionsQueryHandler{db: db, guard: guard}
}

// Handle executes the ledger query.
func (h GetUserTransactionsQueryHandler) Handle(ctx context.Context, limit int) ([]TransactionResponse, error) {
	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			type,
			amount,
			status,
			proof_ref,
			description,
			created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, caller.ID().String(), clampLimit(limit)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]TransactionResponse, 0)
	for rows.Next() {
		resp, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (TransactionResponse, error) {
	var (
		resp     TransactionResponse
		id       uuid.UUID
		userID   uuid.UUID
		proofRef sql.NullString
	)

	if err := rows.Scan(
		&id,
		&userID,
		&resp.Type,
		&resp.Amount,
		&resp.Status,
		&proofRef,
		&resp.Description,
		&resp.CreatedAt,
	); err != nil {
		return TransactionResponse{}, err
	}

	transactionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TransactionResponse{}, err
	}
	resp.ID = transactionID

	ownerID, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return TransactionResponse{}, err
	}
	resp.UserID = ownerID
	resp.ProofRef = proofRef.String

	return resp, nil
}
