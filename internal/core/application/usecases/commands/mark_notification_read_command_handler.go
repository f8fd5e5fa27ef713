package commands

import (
	"context"

	"marketplace/internal/core/application/access"
	"marketplace/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler handles marking a single notification read.
// Idempotent: re-marking a read notification succeeds.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	guard      access.Guard
}

// NewMarkNotificationReadCommandHandler creates a handler for marking a notification read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory, guard access.Guard) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
	}
}

// Handle processes the command.
// A caller may only mark their own notifications.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
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

	notificationRepo := uow.NotificationRepository()
	n, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !n.UserID().IsEqual(caller.ID()) {
		return errs.NewForbiddenError("notification belongs to another user")
	}

	n.MarkRead()

	if err = notificationRepo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
