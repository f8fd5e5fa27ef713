package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// placeholderVehicleType marks a courier profile created by a role change
// before the courier filled in their vehicle details.
const placeholderVehicleType = "unspecified"

// ChangeUserRoleCommandHandler handles an admin changing a user's role.
// Promoting a user to courier provisions an empty courier profile so the
// rating aggregate has a home from the first delivery on.
type ChangeUserRoleCommandHandler struct {
	uowFactory CourierUoWFactory
	guard      access.Guard
}

// NewChangeUserRoleCommandHandler creates a handler for role changes.
func NewChangeUserRoleCommandHandler(uowFactory CourierUoWFactory, guard access.Guard) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
	}
}

// Handle processes the role change. Admin only.
func (h *ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) error {
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

	userRepo := uow.UserRepository()
	aggregate, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeRole(cmd.Role()); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Role() == user.RoleCourier {
		if err = h.ensureProfile(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *ChangeUserRoleCommandHandler) ensureProfile(ctx context.Context, uow CourierUoW, aggregate *user.User) error {
	courierRepo := uow.CourierRepository()

	_, err := courierRepo.Get(ctx, aggregate.ID())
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	profile, err := courier.NewProfile(aggregate.ID(), placeholderVehicleType, "")
	if err != nil {
		return err
	}

	return courierRepo.Add(ctx, profile)
}
