package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand provisions a user record on first authentication.
// The ID comes from the host platform's identity, so repeated registrations
// of the same identity are no-ops.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string
	email  string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to provision a user.
func NewRegisterUserCommand(userID kernel.UUID, name string, email string) (RegisterUserCommand, error) {
	command := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setName(name),
		command.setEmail(email),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// UserID returns the host identity's user ID.
func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Name returns the display name.
func (c RegisterUserCommand) Name() string {
	return c.name
}

// Email returns the email address.
func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c *RegisterUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *RegisterUserCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterUserCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}
