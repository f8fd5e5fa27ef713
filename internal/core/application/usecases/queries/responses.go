// Package queries contains read operations that project system state.
// Implements the Query pattern for the read side of the CQRS architecture.
// Handlers run raw SQL against the database and bypass the aggregates; they
// never mutate state.
package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
)

// Result caps. Every listing query is bounded; callers page by narrowing
// their filters rather than scrolling unbounded result sets.
const (
	defaultPageSize = 20
	maxPageSize     = 50
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// OrderResponse is the read model of an order row.
type OrderResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	UserID          kernel.UUID
	CourierID       *kernel.UUID
	Item            string
	PickupAddress   string
	DeliveryAddress string
	TotalAmount     float64
	DeliveryFee     float64
	Rating          *int
	Status          string
	CreatedAt       time.Time
}

// orderColumns is the SELECT list matching scanOrder's scan order.
const orderColumns = `
	id,
	order_number,
	user_id,
	courier_id,
	item,
	pickup_address,
	delivery_address,
	total_amount,
	delivery_fee,
	rating,
	status,
	created_at`

func scanOrder(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp      OrderResponse
		id        uuid.UUID
		userID    uuid.UUID
		courierID uuid.NullUUID
		rating    sql.NullInt64
	)

	if err := rows.Scan(
		&id,
		&resp.OrderNumber,
		&userID,
		&courierID,
		&resp.Item,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&resp.TotalAmount,
		&resp.DeliveryFee,
		&rating,
		&resp.Status,
		&resp.CreatedAt,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	ownerID, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.UserID = ownerID

	if courierID.Valid {
		cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if cErr != nil {
			return OrderResponse{}, cErr
		}
		resp.CourierID = &cID
	}
	if rating.Valid {
		r := int(rating.Int64)
		resp.Rating = &r
	}

	return resp, nil
}

func collectOrders(rows *sql.Rows) ([]OrderResponse, error) {
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// TransactionResponse is the read model of a ledger row.
type TransactionResponse struct {
	ID          kernel.UUID
	UserID      kernel.UUID
	Type        string
	Amount      float64
	Status      string
	ProofRef    string
	Description string
	CreatedAt   time.Time
}

// PendingTransactionResponse extends TransactionResponse with requester
// details and a resolved proof URL for the admin review screen.
type PendingTransactionResponse struct {
	TransactionResponse
	UserName  string
	UserEmail string
	ProofURL  string
}

// NotificationResponse is the read model of a notification row. The payload
// columns mirror the typed payload union; absent fields are nil.
type NotificationResponse struct {
	ID            kernel.UUID
	Type          string
	Title         string
	Message       string
	Read          bool
	OrderID       *kernel.UUID
	CourierID     *kernel.UUID
	Rating        *int
	TransactionID *kernel.UUID
	Amount        *float64
	CreatedAt     time.Time
}
