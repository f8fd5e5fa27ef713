package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Creates the pending order, confirms it to the owner, and announces it to
// every enabled courier.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, guard access.Guard) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the order creation command.
// The caller becomes the order's owner. The order, the owner's confirmation,
// and the courier broadcast commit atomically. Returns the new order's ID.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	orderAggregate, err := order.NewOrder(
		cmd.OrderID(),
		order.NewOrderNumber(now),
		caller.ID(),
		cmd.Item(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.PickupLocation(),
		cmd.DeliveryLocation(),
		cmd.TotalAmount(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, orderAggregate); err != nil {
		return kernel.UUID{}, err
	}

	notificationRepo := uow.NotificationRepository()
	if err = h.fanout.Notify(ctx, notificationRepo, caller.ID(),
		notification.TypeOrderCreated, "Order placed",
		"Order "+orderAggregate.OrderNumber()+" is waiting for a courier",
		notification.OrderPayload{OrderID: orderAggregate.ID()}, now); err != nil {
		return kernel.UUID{}, err
	}

	if _, err = h.fanout.BroadcastOrderAvailable(ctx,
		uow.UserRepository(), notificationRepo, orderAggregate, now); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return orderAggregate.ID(), nil
}
