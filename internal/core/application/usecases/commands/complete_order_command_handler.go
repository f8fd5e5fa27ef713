package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// CompleteOrderCommandHandler handles the owner marking an order delivered.
//
// Completion is the write that feeds the courier's rating aggregate: the
// order transition, the rating average update, and the delivery counter bump
// commit in one transaction.
type CompleteOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory DeliveryUoWFactory, guard access.Guard) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the completion command.
// Only the owner may complete. An invalid rating fails before any mutation;
// a non-in-transit order returns a conflict.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	if !orderAggregate.UserID().IsEqual(caller.ID()) {
		return errs.NewForbiddenError("only the owner may complete an order")
	}

	now := time.Now()
	if err = orderAggregate.Deliver(cmd.Rating(), now); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, orderAggregate, order.StatusInTransit); err != nil {
		return err
	}

	courierID := *orderAggregate.CourierID()
	courierRepo := uow.CourierRepository()
	profile, err := courierRepo.Get(ctx, courierID)
	if err != nil {
		return err
	}

	if err = profile.ApplyRating(cmd.Rating()); err != nil {
		return err
	}
	profile.RecordDelivery()

	if err = courierRepo.Update(ctx, profile); err != nil {
		return err
	}

	notificationRepo := uow.NotificationRepository()
	message := "Order " + orderAggregate.OrderNumber() + " was rated"
	if cmd.Review() != "" {
		message += ": " + cmd.Review()
	}
	if err = h.fanout.Notify(ctx, notificationRepo, courierID,
		notification.TypeCourierRated, "Delivery rated", message,
		notification.RatingPayload{
			OrderID: orderAggregate.ID(),
			Rating:  cmd.Rating(),
		}, now); err != nil {
		return err
	}

	if err = h.fanout.Notify(ctx, notificationRepo, caller.ID(),
		notification.TypeOrderDelivered, "Order delivered",
		"Order "+orderAggregate.OrderNumber()+" is complete",
		notification.OrderPayload{OrderID: orderAggregate.ID()}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
