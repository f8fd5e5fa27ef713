package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
)

// GetAvailableOrdersQueryHandler lists pending orders a courier can accept.
// Newest first, hard-capped, no pagination: a courier acts on the freshest
// orders or narrows by other means.
type GetAvailableOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetAvailableOrdersQueryHandler creates a handler for the courier order feed.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB, guard access.Guard) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db, guard: guard}
}

// Handle executes the feed query. Courier role only.
func (h GetAvailableOrdersQueryHandler) Handle(ctx context.Context) ([]OrderResponse, error) {
	if _, err := h.guard.RequireRole(ctx, user.RoleCourier); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, order.StatusPending.String(), maxPageSize).Rows()
	if err != nil {
		return nil, err
	}

	return collectOrders(rows)
}
