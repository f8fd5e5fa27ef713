package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// RegisterUserCommandHandler provisions users on first authentication.
// New users start as enabled, unverified clients with a zero balance.
// Re-registering an existing identity succeeds without changes.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user provisioning.
// This is the one command without an access guard: it runs before the caller
// has a user record to authorize against.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	_, err := userRepo.Get(ctx, cmd.UserID())
	if err == nil {
		return uow.Commit(ctx)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := user.NewUser(cmd.UserID(), cmd.Name(), cmd.Email(), user.RoleClient)
	if err != nil {
		return err
	}

	if err = userRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
