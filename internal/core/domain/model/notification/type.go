package notification

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Type tags a notification with the lifecycle event that produced it.
// Each type admits exactly one payload shape, enforced by the Notification
// constructor.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeOrderCreated confirms to an owner that their order was placed.
	TypeOrderCreated

	// TypeOrderAvailable announces a new pending order to a courier.
	TypeOrderAvailable

	// TypeOrderAccepted tells an owner that a courier took their order.
	TypeOrderAccepted

	// TypeOrderCancelled tells the assigned courier that an order was cancelled.
	TypeOrderCancelled

	// TypeOrderDelivered confirms to an owner that their order was delivered.
	TypeOrderDelivered

	// TypeCourierRated tells a courier how a delivery was rated.
	TypeCourierRated

	// TypeDepositRequested tells admins that a deposit awaits review.
	TypeDepositRequested

	// TypeDepositApproved tells a depositor that their deposit was credited.
	TypeDepositApproved

	// TypeDepositRejected tells a depositor that their deposit was declined.
	TypeDepositRejected
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:          "unknown",
		TypeOrderCreated:     "order_created",
		TypeOrderAvailable:   "order_available",
		TypeOrderAccepted:    "order_accepted",
		TypeOrderCancelled:   "order_cancelled",
		TypeOrderDelivered:   "order_delivered",
		TypeCourierRated:     "courier_rated",
		TypeDepositRequested: "deposit_requested",
		TypeDepositApproved:  "deposit_approved",
		TypeDepositRejected:  "deposit_rejected",
	}
}

func getValidTypeStrings() map[Type]string {
	strings := getTypeStrings()
	delete(strings, TypeUnknown)
	return strings
}

// TypeFromString parses a notification type from its string representation.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type",
		fmt.Errorf("%q is not a valid notification type", s))
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid notification type", t))
	}
	return nil
}

// String returns the snake_case name of the type.
// Returns "unknown" for invalid values.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
