package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/user"
)

// UpdateOrderStatusCommandHandler lets an admin correct an order's status.
// The requested transition still has to be legal in the state machine; the
// courier assignment is never touched by this path.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
}

// NewUpdateOrderStatusCommandHandler creates a handler for status corrections.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, guard access.Guard) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
	}
}

// Handle processes the status correction.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.guard.RequireRole(ctx, user.RoleAdmin); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	statusAtRead := orderAggregate.Status()

	if err = orderAggregate.ChangeStatus(cmd.Status(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, orderAggregate, statusAtRead); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
