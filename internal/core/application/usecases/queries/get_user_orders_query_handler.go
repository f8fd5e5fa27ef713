package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
)

// GetUserOrdersQueryHandler lists the caller's own orders, newest first.
type GetUserOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetUserOrdersQueryHandler creates a handler for the caller's order history.
func NewGetUserOrdersQueryHandler(db *gorm.DB, guard access.Guard) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db, guard: guard}
}

// Handle executes the history query. A non-positive limit falls back to the
// default page size; the cap applies regardless.
func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, limit int) ([]OrderResponse, error) {
	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, caller.ID().String(), clampLimit(limit)).Rows()
	if err != nil {
		return nil, err
	}

	return collectOrders(rows)
}
