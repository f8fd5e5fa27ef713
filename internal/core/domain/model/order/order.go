package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultDeliveryFee is charged when an order is created without an amount.
const DefaultDeliveryFee = 5.0

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemIsRequired is returned when attempting to create an order without an item description.
	ErrItemIsRequired = errs.NewValueIsRequiredError("item")
	// ErrPickupAddressIsRequired is returned when the pickup address is empty.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickupAddress")
	// ErrDeliveryAddressIsRequired is returned when the delivery address is empty.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")
	// ErrCourierAlreadyAssigned is returned when accepting an order that already has a courier.
	ErrCourierAlreadyAssigned = errs.NewConflictError("courierId", "order already has a courier")
)

// Order represents a delivery request in the marketplace. It is the aggregate
// root that manages the order lifecycle from creation through acceptance to a
// terminal state.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, an order number, and an owner
//   - Item description and both addresses are non-empty
//   - The courier is set exactly once, on acceptance; it is present if and
//     only if the order reached in-transit (and is retained through delivery
//     or a later cancellation)
//   - The rating is set only when the order is delivered and lies in [1, 5]
//   - Status transitions follow the state machine defined on Status
//   - Terminal orders are retained for history, never deleted
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id               kernel.UUID
	orderNumber      string
	userID           kernel.UUID
	courierID        *kernel.UUID
	item             string
	pickupAddress    string
	deliveryAddress  string
	pickupLocation   *kernel.Location
	deliveryLocation *kernel.Location
	totalAmount      float64
	deliveryFee      float64
	rating           *int
	status           Status
	createdAt        time.Time
	acceptedAt       *time.Time
	deliveredAt      *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new pending Order owned by userID.
//
// A nil totalAmount means the caller did not price the order; the delivery
// fee then falls back to DefaultDeliveryFee and the total amount mirrors it.
// Locations are optional refinements of the textual addresses.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	item string,
	pickupAddress string,
	deliveryAddress string,
	pickupLocation *kernel.Location,
	deliveryLocation *kernel.Location,
	totalAmount *float64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    StatusPending,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setItem(item),
		o.setPickupAddress(pickupAddress),
		o.setDeliveryAddress(deliveryAddress),
		o.setPickupLocation(pickupLocation),
		o.setDeliveryLocation(deliveryLocation),
		o.setAmounts(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its status, assignment, rating, and timestamps.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	courierID *kernel.UUID,
	item string,
	pickupAddress string,
	deliveryAddress string,
	pickupLocation *kernel.Location,
	deliveryLocation *kernel.Location,
	totalAmount float64,
	deliveryFee float64,
	rating *int,
	status Status,
	createdAt time.Time,
	acceptedAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		courierID:   courierID,
		totalAmount: totalAmount,
		deliveryFee: deliveryFee,
		createdAt:   createdAt,
		acceptedAt:  acceptedAt,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setItem(item),
		o.setPickupAddress(pickupAddress),
		o.setDeliveryAddress(deliveryAddress),
		o.setPickupLocation(pickupLocation),
		o.setDeliveryLocation(deliveryLocation),
		o.setStatus(status),
		o.setRating(rating),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the identifier of the order's owner. Immutable.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// CourierID returns the assigned courier's ID, or nil if unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Item returns the item description.
func (o *Order) Item() string {
	return o.item
}

// PickupAddress returns the textual pickup address.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// DeliveryAddress returns the textual delivery address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// PickupLocation returns the pickup coordinates, if provided.
func (o *Order) PickupLocation() *kernel.Location {
	return o.pickupLocation
}

// DeliveryLocation returns the delivery coordinates, if provided.
func (o *Order) DeliveryLocation() *kernel.Location {
	return o.deliveryLocation
}

// TotalAmount returns the order's total amount.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// Rating returns the client's rating of the delivery, or nil if not yet rated.
func (o *Order) Rating() *int {
	return o.rating
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns the acceptance timestamp, or nil if never accepted.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// DeliveredAt returns the delivery timestamp, or nil if not delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Accept assigns the order to a courier and moves it to in-transit.
//
// Business rules:
//   - The courier ID must be valid
//   - Only a pending order can be accepted; otherwise a conflict is returned
//   - The courier is set exactly once; reassignment is not permitted
func (o *Order) Accept(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	acceptedAt := now.UTC()
	o.status = newStatus
	o.courierID = &courierID
	o.acceptedAt = &acceptedAt
	return nil
}

// Deliver marks the order as delivered and records the client's rating.
//
// Business rules:
//   - The rating must be within [courier.RatingMin, courier.RatingMax];
//     it is validated before the status transition so an invalid rating
//     never mutates the order
//   - Only an in-transit order can be delivered
func (o *Order) Deliver(rating int, now time.Time) error {
	if err := validateRating(rating); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	deliveredAt := now.UTC()
	o.status = newStatus
	o.rating = &rating
	o.deliveredAt = &deliveredAt
	return nil
}

// Cancel moves the order to cancelled.
// Terminal orders cannot be cancelled; an assigned courier is retained for
// history.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ChangeStatus performs a generic transition used for operational
// corrections. The transition is validated against the state machine and
// against the current courier assignment, so a correction can never produce
// a state the order could not be restored from. Moving to delivered records
// the delivery timestamp. Unlike Accept, it does not touch the courier
// assignment.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	if err := o.status.CanTransitionTo(next); err != nil {
		return err
	}
	if err := next.ValidateCanHaveCourier(o.courierID != nil); err != nil {
		return err
	}

	o.status = next
	if next == StatusDelivered {
		deliveredAt := now.UTC()
		o.deliveredAt = &deliveredAt
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setItem(item string) error {
	if item == "" {
		return ErrItemIsRequired
	}
	o.item = item
	return nil
}

func (o *Order) setPickupAddress(address string) error {
	if address == "" {
		return ErrPickupAddressIsRequired
	}
	o.pickupAddress = address
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPickupLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	o.pickupLocation = location
	return nil
}

func (o *Order) setDeliveryLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setAmounts(totalAmount *float64) error {
	amount := DefaultDeliveryFee
	if totalAmount != nil {
		amount = *totalAmount
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	o.totalAmount = amount
	o.deliveryFee = amount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveCourier(o.courierID != nil); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setRating(rating *int) error {
	if rating != nil {
		if err := validateRating(*rating); err != nil {
			return err
		}
	}
	o.rating = rating
	return nil
}
