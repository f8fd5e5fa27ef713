package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCourierProfileCommandIsNotConstructed = errors.New(
	"UpdateCourierProfileCommand must be created via NewUpdateCourierProfileCommand constructor",
)

// UpdateCourierProfileCommand represents a courier editing their own
// vehicle details and, optionally, reporting their current location.
type UpdateCourierProfileCommand struct { //nolint:recvcheck //using for validation
	vehicleType  string
	vehiclePlate string
	location     *kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateCourierProfileCommand creates a command to edit the caller's profile.
func NewUpdateCourierProfileCommand(vehicleType string, vehiclePlate string, location *kernel.Location) (UpdateCourierProfileCommand, error) {
	command := UpdateCourierProfileCommand{
		vehiclePlate: vehiclePlate,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}

	if err := command.setVehicleType(vehicleType); err != nil {
		return UpdateCourierProfileCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierProfileCommandIsNotConstructed)
}

// VehicleType returns the new vehicle type.
func (c UpdateCourierProfileCommand) VehicleType() string {
	return c.vehicleType
}

// VehiclePlate returns the new vehicle plate.
func (c UpdateCourierProfileCommand) VehiclePlate() string {
	return c.vehiclePlate
}

// Location returns the reported location, if any.
func (c UpdateCourierProfileCommand) Location() *kernel.Location {
	return c.location
}

func (c *UpdateCourierProfileCommand) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return errs.NewValueIsRequiredError("vehicleType")
	}
	c.vehicleType = vehicleType
	return nil
}
