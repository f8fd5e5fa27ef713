package transaction

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the review state of a ledger transaction.
//
// State transitions:
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Approved and Rejected are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a requested transaction,
	// awaiting an admin decision.
	StatusPending

	// StatusApproved indicates the transaction was approved and, for
	// deposits, the balance was credited. Terminal.
	StatusApproved

	// StatusRejected indicates the transaction was rejected without a
	// balance change. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusPending:  "pending",
		StatusApproved: "approved",
		StatusRejected: "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:  "pending",
		StatusApproved: "approved",
		StatusRejected: "rejected",
	}
}

// StatusFromString parses a status from its string representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid transaction status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid transaction status", s))
	}
	return nil
}

// String returns the lowercase name of the status.
// Returns "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Approve transitions the status to Approved.
// Only a pending transaction can be approved.
func (s Status) Approve() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewConflictError("status",
			fmt.Sprintf("%s is not a valid status to approve", s))
	}
	return StatusApproved, nil
}

// Reject transitions the status to Rejected.
// Only a pending transaction can be rejected.
func (s Status) Reject() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewConflictError("status",
			fmt.Sprintf("%s is not a valid status to reject", s))
	}
	return StatusRejected, nil
}
