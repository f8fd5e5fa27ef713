package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// UpdateCourierProfileCommandHandler handles a courier editing their profile.
// The first edit creates the profile when a role change did not already.
// Rating state is never touched by this path.
type UpdateCourierProfileCommandHandler struct {
	uowFactory CourierUoWFactory
	guard      access.Guard
}

// NewUpdateCourierProfileCommandHandler creates a handler for profile edits.
func NewUpdateCourierProfileCommandHandler(uowFactory CourierUoWFactory, guard access.Guard) UpdateCourierProfileCommandHandler {
	return UpdateCourierProfileCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
	}
}

// Handle processes the profile edit. Courier role only.
func (h *UpdateCourierProfileCommandHandler) Handle(ctx context.Context, cmd UpdateCourierProfileCommand) error {
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

	courierRepo := uow.CourierRepository()

	profile, err := courierRepo.Get(ctx, caller.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		profile, err = courier.NewProfile(caller.ID(), cmd.VehicleType(), cmd.VehiclePlate())
		if err != nil {
			return err
		}
		if err = h.applyLocation(profile, cmd); err != nil {
			return err
		}
		if err = courierRepo.Add(ctx, profile); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}
	if err != nil {
		return err
	}

	if err = profile.ChangeVehicle(cmd.VehicleType(), cmd.VehiclePlate()); err != nil {
		return err
	}
	if err = h.applyLocation(profile, cmd); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateCourierProfileCommandHandler) applyLocation(profile *courier.Profile, cmd UpdateCourierProfileCommand) error {
	if cmd.Location() == nil {
		return nil
	}
	return profile.MoveTo(*cmd.Location())
}
