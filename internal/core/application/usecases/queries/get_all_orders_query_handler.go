package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
)

// GetAllOrdersQueryHandler lists orders across all users for operational
// oversight, optionally filtered by status. Admin only.
type GetAllOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetAllOrdersQueryHandler creates a handler for the admin order listing.
func NewGetAllOrdersQueryHandler(db *gorm.DB, guard access.Guard) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db, guard: guard}
}

// Handle executes the listing. A nil status means no filter.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, status *order.Status, limit int) ([]OrderResponse, error) {
	if _, err := h.guard.RequireRole(ctx, user.RoleAdmin); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders`
	args := make([]any, 0, 2)

	if status != nil {
		if err := status.Validate(); err != nil {
			return nil, err
		}
		query += `
		WHERE status = ?`
		args = append(args, status.String())
	}

	query += `
		ORDER BY created_at DESC
		LIMIT ?`
	args = append(args, clampLimit(limit))

	rows, err := h.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}

	return collectOrders(rows)
}
