package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transaction"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
)

// GetPendingTransactionsQueryHandler lists deposits awaiting review for the
// admin screen: each row joins the requester's name and email and resolves
// the payment proof reference to a fetchable URL.
type GetPendingTransactionsQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
	blobs ports.BlobStore
}

// NewGetPendingTransactionsQueryHandler creates a handler for the review queue.
func NewGetPendingTransactionsQueryHandler(db *gorm.DB, guard access.Guard, blobs ports.BlobStore) GetPendingTransactionsQueryHandler {
	return GetPendingTransactionsQueryHandler{db: db, guard: guard, blobs: blobs}
}

// Handle executes the review queue query. Admin only, oldest first so the
// longest-waiting deposit is reviewed first.
func (h GetPendingTransactionsQueryHandler) Handle(ctx context.Context, limit int) ([]PendingTransactionResponse, error) {
	if _, err := h.guard.RequireRole(ctx, user.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.user_id,
			t.type,
			t.amount,
			t.status,
			t.proof_ref,
			t.description,
			t.created_at,
			u.name,
			u.email
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		WHERE t.status = ?
		ORDER BY t.created_at ASC
		LIMIT ?
	`, transaction.StatusPending.String(), clampLimit(limit)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]PendingTransactionResponse, 0)
	for rows.Next() {
		resp, err := h.scanPending(ctx, rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return pending, nil
}

func (h GetPendingTransactionsQueryHandler) scanPending(ctx context.Context, rows *sql.Rows) (PendingTransactionResponse, error) {
	var (
		resp     PendingTransactionResponse
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
		&resp.UserName,
		&resp.UserEmail,
	); err != nil {
		return PendingTransactionResponse{}, err
	}

	transactionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return PendingTransactionResponse{}, err
	}
	resp.ID = transactionID

	requesterID, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return PendingTransactionResponse{}, err
	}
	resp.UserID = requesterID
	resp.ProofRef = proofRef.String

	if resp.ProofRef != "" {
		url, urlErr := h.blobs.ResolveURL(ctx, resp.ProofRef)
		if urlErr != nil {
			return PendingTransactionResponse{}, urlErr
		}
		resp.ProofURL = url
	}

	return resp, nil
}
