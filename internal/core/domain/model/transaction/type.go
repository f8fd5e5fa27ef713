package transaction

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Type classifies a ledger transaction by its business meaning.
//
// Only deposits currently have a full lifecycle (request, review,
// approve/reject with balance credit). The remaining types are reserved for
// the settlement flows of the host platform and carry no behavior here.
type Type int

const (
	// TypeUnknown represents an invalid or undefined transaction type.
	TypeUnknown Type = iota

	// TypeDeposit is a client topping up their balance, pending admin review.
	TypeDeposit

	// TypeWithdrawal is a balance withdrawal. Reserved.
	TypeWithdrawal

	// TypePayment is a payment for a delivery. Reserved.
	TypePayment

	// TypeRefund is a refund of a payment. Reserved.
	TypeRefund

	// TypeEarning is a courier's delivery earning. Reserved.
	TypeEarning
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:    "unknown",
		TypeDeposit:    "deposit",
		TypeWithdrawal: "withdrawal",
		TypePayment:    "payment",
		TypeRefund:     "refund",
		TypeEarning:    "earning",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeDeposit:    "deposit",
		TypeWithdrawal: "withdrawal",
		TypePayment:    "payment",
		TypeRefund:     "refund",
		TypeEarning:    "earning",
	}
}

// TypeFromString parses a transaction type from its string representation.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type",
		fmt.Errorf("%q is not a valid transaction type", s))
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid transaction type", t))
	}
	return nil
}

// String returns the lowercase name of the type.
// Returns "unknown" for invalid values.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
