package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
)

// AcceptOrderCommandHandler handles a courier claiming a pending order.
//
// The claim is optimistic: the aggregate transition is validated in memory,
// then persisted with a status guard so that when two couriers race, exactly
// one update matches the pending row and the loser observes a conflict.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, guard access.Guard) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the accept command.
// Only courier-role callers may accept. On success the owner is notified and
// the competing "order available" copies are pruned, sparing the accepting
// courier's own copy.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller, err := h.guard.RequireRole(ctx, user.RoleCourier)
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

	now := time.Now()
	if err = orderAggregate.Accept(caller.ID(), now); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, orderAggregate, order.StatusPending); err != nil {
		return err
	}

	notificationRepo := uow.NotificationRepository()
	if err = h.fanout.Notify(ctx, notificationRepo, orderAggregate.UserID(),
		notification.TypeOrderAccepted, "Courier on the way",
		"Order "+orderAggregate.OrderNumber()+" was accepted by a courier",
		notification.AssignmentPayload{
			OrderID:   orderAggregate.ID(),
			CourierID: caller.ID(),
		}, now); err != nil {
		return err
	}

	courierID := caller.ID()
	if err = h.fanout.PruneByOrder(ctx, notificationRepo, orderAggregate.ID(), &courierID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
