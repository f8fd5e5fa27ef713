package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
)

// JSON views of the query read models. UUIDs are rendered as strings and
// optional fields are omitted when absent.

// OrderView is the JSON representation of an order.
type OrderView struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	UserID          string    `json:"user_id"`
	CourierID       *string   `json:"courier_id,omitempty"`
	Item            string    `json:"item"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	TotalAmount     float64   `json:"total_amount"`
	DeliveryFee     float64   `json:"delivery_fee"`
	Rating          *int      `json:"rating,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionView is the JSON representation of a ledger entry.
type TransactionView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ProofRef    string    `json:"proof_ref,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PendingTransactionView extends TransactionView with requester details for
// the admin review queue.
type PendingTransactionView struct {
	TransactionView
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	ProofURL  string `json:"proof_url,omitempty"`
}

// NotificationView is the JSON representation of a notification.
type NotificationView struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	OrderID       *string   `json:"order_id,omitempty"`
	CourierID     *string   `json:"courier_id,omitempty"`
	Rating        *int      `json:"rating,omitempty"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Amount        *float64  `json:"amount,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrderView(resp queries.OrderResponse) OrderView {
	return OrderView{
		ID:              resp.ID.String(),
		OrderNumber:     resp.OrderNumber,
		UserID:          resp.UserID.String(),
		CourierID:       optionalID(resp.CourierID),
		Item:            resp.Item,
		PickupAddress:   resp.PickupAddress,
		DeliveryAddress: resp.DeliveryAddress,
		TotalAmount:     resp.TotalAmount,
		DeliveryFee:     resp.DeliveryFee,
		Rating:          resp.Rating,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt,
	}
}

func toOrderViews(resps []queries.OrderResponse) []OrderView {
	views := make([]OrderView, len(resps))
	for i, resp := range resps {
		views[i] = toOrderView(resp)
	}
	return views
}

func toTransactionView(resp queries.TransactionResponse) TransactionView {
	return TransactionView{
		ID:          resp.ID.String(),
		UserID:      resp.UserID.String(),
		Type:        resp.Type,
		Amount:      resp.Amount,
		Status:      resp.Status,
		ProofRef:    resp.ProofRef,
		Description: resp.Description,
		CreatedAt:   resp.CreatedAt,
	}
}

func toPendingTransactionView(resp queries.PendingTransactionResponse) PendingTransactionView {
	return PendingTransactionView{
		TransactionView: toTransactionView(resp.TransactionResponse),
		UserName:        resp.UserName,
		UserEmail:       resp.UserEmail,
		ProofURL:        resp.ProofURL,
	}
}

func toNotificationView(resp queries.NotificationResponse) NotificationView {
	return NotificationView{
		ID:            resp.ID.String(),
		Type:          resp.Type,
		Title:         resp.Title,
		Message:       resp.Message,
		Read:          resp.Read,
		OrderID:       optionalID(resp.OrderID),
		CourierID:     optionalID(resp.CourierID),
		Rating:        resp.Rating,
		TransactionID: optionalID(resp.TransactionID),
		Amount:        resp.Amount,
		CreatedAt:     resp.CreatedAt,
	}
}
