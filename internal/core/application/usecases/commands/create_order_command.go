package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new delivery order.
// The owner is the authenticated caller; it is resolved by the handler, not
// carried in the command.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("flowers", "1 Pickup Lane", "2 Delivery Road", nil, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, accessGuard)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	item             string
	pickupAddress    string
	deliveryAddress  string
	pickupLocation   *kernel.Location
	deliveryLocation *kernel.Location
	totalAmount      *float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Automatically generates a unique ID for the order. Locations and amount
// are optional; a nil amount falls back to the default delivery fee.
func NewCreateOrderCommand(
	item string,
	pickupAddress string,
	deliveryAddress string,
	pickupLocation *kernel.Location,
	deliveryLocation *kernel.Location,
	totalAmount *float64,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		pickupLocation:   pickupLocation,
		deliveryLocation: deliveryLocation,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(kernel.NewUUID()),
		command.setItem(item),
		command.setPickupAddress(pickupAddress),
		command.setDeliveryAddress(deliveryAddress),
		command.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the generated order ID.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Item returns the item description.
func (c CreateOrderCommand) Item() string {
	return c.item
}

// PickupAddress returns the pickup address.
func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the delivery address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// PickupLocation returns the optional pickup coordinates.
func (c CreateOrderCommand) PickupLocation() *kernel.Location {
	return c.pickupLocation
}

// DeliveryLocation returns the optional delivery coordinates.
func (c CreateOrderCommand) DeliveryLocation() *kernel.Location {
	return c.deliveryLocation
}

// TotalAmount returns the optional order amount.
func (c CreateOrderCommand) TotalAmount() *float64 {
	return c.totalAmount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItem(item string) error {
	if item == "" {
		return errs.NewValueIsRequiredError("item")
	}
	c.item = item
	return nil
}

func (c *CreateOrderCommand) setPickupAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	c.pickupAddress = address
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount *float64) error {
	if totalAmount != nil && *totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%f is not greater than 0", *totalAmount))
	}
	c.totalAmount = totalAmount
	return nil
}
