package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/user"
)

// GetCourierOrdersQueryHandler lists the orders assigned to the calling
// courier, newest first.
type GetCourierOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetCourierOrdersQueryHandler creates a handler for a courier's deliveries.
func NewGetCourierOrdersQueryHandler(db *gorm.DB, guard access.Guard) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{db: db, guard: guard}
}

// Handle executes the deliveries query. Courier role only.
func (h GetCourierOrdersQueryHandler) Handle(ctx context.Context, limit int) ([]OrderResponse, error) {
	caller, err := h.guard.RequireRole(ctx, user.RoleCourier)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE courier_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, caller.ID().String(), clampLimit(limit)).Rows()
	if err != nil {
		return nil, err
	}

	return collectOrders(rows)
}
