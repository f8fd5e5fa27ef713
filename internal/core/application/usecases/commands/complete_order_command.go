package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents the owner confirming delivery and rating
// the courier. The optional review text travels to the courier inside the
// notification; only the numeric rating is aggregated.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	rating  int
	review  string

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to mark an order delivered.
// The rating bounds are enforced by the order aggregate on Handle, keeping a
// single source of truth for the range.
func NewCompleteOrderCommand(orderID kernel.UUID, rating int, review string) (CompleteOrderCommand, error) {
	command := CompleteOrderCommand{
		rating: rating,
		review: review,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return CompleteOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rating returns the rating given by the owner.
func (c CompleteOrderCommand) Rating() int {
	return c.rating
}

// Review returns the optional review text.
func (c CompleteOrderCommand) Review() string {
	return c.review
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
