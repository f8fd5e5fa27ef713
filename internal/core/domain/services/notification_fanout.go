package services

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
)

// NotificationFanout is a domain service that turns lifecycle events into
// notifications for the users concerned.
//
// Key responsibilities:
//   - Delivering a single notification to one recipient
//   - Broadcasting a new order to every eligible courier
//   - Broadcasting ledger events to every admin
//   - Pruning notifications that reference an order
//
// Business rules:
//   - Eligible couriers are enabled users holding the courier role,
//     recomputed from storage on every broadcast, never cached
//   - Every notification starts unread and carries a payload typed to its event
type NotificationFanout struct{}

// NewNotificationFanout creates a new NotificationFanout instance.
func NewNotificationFanout() NotificationFanout {
	return NotificationFanout{}
}

// Notify delivers a single notification to recipientID.
func (f NotificationFanout) Notify(
	ctx context.Context,
	notifications ports.NotificationRepository,
	recipientID kernel.UUID,
	notType notification.Type,
	title string,
	message string,
	payload notification.Payload,
	now time.Time,
) error {
	n, err := notification.NewNotification(
		kernel.NewUUID(), recipientID, notType, title, message, payload, now)
	if err != nil {
		return err
	}
	return notifications.Add(ctx, n)
}

// BroadcastOrderAvailable announces a freshly created order to every enabled
// courier. Returns the number of couriers notified.
func (f NotificationFanout) BroadcastOrderAvailable(
	ctx context.Context,
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	o *order.Order,
	now time.Time,
) (int, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	couriers, err := users.GetAllEnabledByRole(ctx, user.RoleCourier)
	if err != nil {
		return 0, err
	}

	payload := notification.OrderPayload{OrderID: o.ID()}
	title := "New order available"
	message := fmt.Sprintf("Order %s is waiting for a courier", o.OrderNumber())

	for _, c := range couriers {
		if err := f.Notify(ctx, notifications, c.ID(),
			notification.TypeOrderAvailable, title, message, payload, now); err != nil {
			return 0, err
		}
	}

	return len(couriers), nil
}

// BroadcastToAdmins delivers the same notification to every enabled admin.
// Returns the number of admins notified.
func (f NotificationFanout) BroadcastToAdmins(
	ctx context.Context,
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	notType notification.Type,
	title string,
	message string,
	payload notification.Payload,
	now time.Time,
) (int, error) {
	admins, err := users.GetAllEnabledByRole(ctx, user.RoleAdmin)
	if err != nil {
		return 0, err
	}

	for _, a := range admins {
		if err := f.Notify(ctx, notifications, a.ID(),
			notType, title, message, payload, now); err != nil {
			return 0, err
		}
	}

	return len(admins), nil
}

// PruneByOrder removes every notification referencing orderID. A non-nil
// exceptUserID spares that recipient's copies, so an accepting courier keeps
// their own record of the order.
func (f NotificationFanout) PruneByOrder(
	ctx context.Context,
	notifications ports.NotificationRepository,
	orderID kernel.UUID,
	exceptUserID *kernel.UUID,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	return notifications.DeleteByOrder(ctx, orderID, exceptUserID)
}
