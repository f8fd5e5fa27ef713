package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// GetOrderByIDQueryHandler retrieves one order for its owner, its assigned
// courier, or an admin.
type GetOrderByIDQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetOrderByIDQueryHandler creates a handler for single-order lookups.
func NewGetOrderByIDQueryHandler(db *gorm.DB, guard access.Guard) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db, guard: guard}
}

// Handle executes the lookup.
// Returns ObjectNotFound for a missing order and Forbidden for a caller with
// no relation to it.
func (h GetOrderByIDQueryHandler) Handle(ctx context.Context, query GetOrderByIDQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}

	orders, err := collectOrders(rows)
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	resp := orders[0]

	isOwner := resp.UserID.IsEqual(caller.ID())
	isCourier := resp.CourierID != nil && resp.CourierID.IsEqual(caller.ID())
	if !isOwner && !isCourier && caller.Role() != user.RoleAdmin {
		return OrderResponse{}, errs.NewForbiddenError("order belongs to another user")
	}

	return resp, nil
}
