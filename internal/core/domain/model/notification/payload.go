package notification

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Payload is the typed event data attached to a notification. The set of
// implementations is closed: OrderPayload, AssignmentPayload, RatingPayload
// and DepositPayload. Each notification type pairs with exactly one of them.
type Payload interface {
	Validate() error

	isPayload()
}

// OrderPayload references the order an event is about.
// Used by order_created, order_available, order_cancelled and order_delivered.
type OrderPayload struct {
	OrderID kernel.UUID
}

func (p OrderPayload) isPayload() {}

// Validate checks the payload references a valid order.
func (p OrderPayload) Validate() error {
	return p.OrderID.Validate()
}

// AssignmentPayload references an order together with the courier assigned
// to it. Used by order_accepted.
type AssignmentPayload struct {
	OrderID   kernel.UUID
	CourierID kernel.UUID
}

func (p AssignmentPayload) isPayload() {}

// Validate checks both references are valid.
func (p AssignmentPayload) Validate() error {
	if err := p.OrderID.Validate(); err != nil {
		return err
	}
	return p.CourierID.Validate()
}

// RatingPayload carries the rating a delivered order received.
// Used by courier_rated.
type RatingPayload struct {
	OrderID kernel.UUID
	Rating  int
}

func (p RatingPayload) isPayload() {}

// Validate checks the order reference and the rating bounds.
func (p RatingPayload) Validate() error {
	if err := p.OrderID.Validate(); err != nil {
		return err
	}
	if p.Rating < 1 || p.Rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", p.Rating, 1, 5)
	}
	return nil
}

// DepositPayload references a ledger transaction and its amount.
// Used by deposit_requested, deposit_approved and deposit_rejected.
type DepositPayload struct {
	TransactionID kernel.UUID
	Amount        float64
}

func (p DepositPayload) isPayload() {}

// Validate checks the transaction reference and the amount.
func (p DepositPayload) Validate() error {
	if err := p.TransactionID.Validate(); err != nil {
		return err
	}
	if p.Amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", p.Amount))
	}
	return nil
}

// validatePayloadShape ensures the payload shape matches the notification type.
func validatePayloadShape(t Type, payload Payload) error {
	var ok bool
	switch t {
	case TypeOrderCreated, TypeOrderAvailable, TypeOrderCancelled, TypeOrderDelivered:
		_, ok = payload.(OrderPayload)
	case TypeOrderAccepted:
		_, ok = payload.(AssignmentPayload)
	case TypeCourierRated:
		_, ok = payload.(RatingPayload)
	case TypeDepositRequested, TypeDepositApproved, TypeDepositRejected:
		_, ok = payload.(DepositPayload)
	}

	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("payload",
			fmt.Errorf("%T is not a valid payload for %s", payload, t))
	}
	return nil
}
