package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> InTransit ──> Delivered
//	          │        │
//	          │        └───────> Cancelled
//	          └────────────────> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	// Orders in this status are visible to couriers and waiting to be accepted.
	StatusPending

	// StatusInTransit indicates a courier accepted the order and is delivering it.
	StatusInTransit

	// StatusDelivered indicates the order was delivered and rated. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled by its owner or an admin. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusInTransit: "in-transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusInTransit: "in-transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// StatusFromString parses a status from its string representation.
// Used when a status arrives from the host platform, e.g. as a query filter
// or an operational correction.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: pending, in-transit, delivered, cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status.
// Returns "unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks whether the state machine permits moving from the
// current status to next, without performing the transition.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	allowed := map[Status][]Status{
		StatusPending:   {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusDelivered, StatusCancelled},
	}

	for _, candidate := range allowed[s] {
		if candidate == next {
			return nil
		}
	}

	return errs.NewConflictError("status",
		fmt.Sprintf("cannot transition from %s to %s", s, next))
}

// Accept transitions the status to InTransit.
// Only a pending order can be accepted; a losing racer observes a conflict.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewConflictError("status", "order is no longer available")
	}
	return StatusInTransit, nil
}

// Deliver transitions the status to Delivered.
// Only an in-transit order can be delivered.
func (s Status) Deliver() (Status, error) {
	if s != StatusInTransit {
		return 0, errs.NewConflictError("status",
			fmt.Sprintf("%s is not a valid status to deliver", s))
	}
	return StatusDelivered, nil
}

// Cancel transitions the status to Cancelled.
// Terminal orders cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewConflictError("status",
			fmt.Sprintf("%s is not a valid status to cancel", s))
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return StatusCancelled, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment.
//
// Business rules:
//   - Pending orders must not have a courier assigned
//   - In-transit and delivered orders must have a courier assigned
//   - Cancelled orders may or may not have one, depending on whether they
//     were cancelled before or after acceptance
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s))
	}

	if !courier && (s == StatusInTransit || s == StatusDelivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s))
	}

	return nil
}
