package commands

import (
	"context"

	"marketplace/internal/core/application/access"
)

// markAllReadBatchSize bounds each UPDATE of the sweep so one user with a
// huge backlog cannot hold long row locks.
const markAllReadBatchSize = 500

// MarkAllNotificationsReadCommandHandler marks every unread notification of
// the caller as read, in bounded batches. Idempotent: a second run affects
// zero rows.
type MarkAllNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	guard      access.Guard
}

// NewMarkAllNotificationsReadCommandHandler creates a handler for the read sweep.
func NewMarkAllNotificationsReadCommandHandler(uowFactory NotificationUoWFactory, guard access.Guard) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
	}
}

// Handle sweeps the caller's unread notifications.
// Returns the number of notifications marked.
func (h *MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context) (int64, error) {
	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()

	var total int64
	for {
		affected, err := notificationRepo.MarkAllRead(ctx, caller.ID(), markAllReadBatchSize)
		if err != nil {
			return 0, err
		}
		total += affected
		if affected < markAllReadBatchSize {
			break
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return total, nil
}
