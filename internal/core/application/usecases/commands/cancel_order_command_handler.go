package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation by the owner or an admin.
// Cancelling removes the order's stale notifications and, when a courier had
// already accepted, tells them the delivery is off.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, guard access.Guard) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the cancel command.
// Terminal orders return a conflict. The cancelled order itself is retained
// for history.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if !orderAggregate.UserID().IsEqual(caller.ID()) && caller.Role() != user.RoleAdmin {
		return errs.NewForbiddenError("only the owner or an admin may cancel an order")
	}

	courierID := orderAggregate.CourierID()
	statusAtRead := orderAggregate.Status()

	if err = orderAggregate.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, orderAggregate, statusAtRead); err != nil {
		return err
	}

	notificationRepo := uow.NotificationRepository()
	if err = h.fanout.PruneByOrder(ctx, notificationRepo, orderAggregate.ID(), nil); err != nil {
		return err
	}

	if courierID != nil {
		if err = h.fanout.Notify(ctx, notificationRepo, *courierID,
			notification.TypeOrderCancelled, "Order cancelled",
			"Order "+orderAggregate.OrderNumber()+" was cancelled",
			notification.OrderPayload{OrderID: orderAggregate.ID()}, time.Now()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
