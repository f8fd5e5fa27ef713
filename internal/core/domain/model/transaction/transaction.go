package transaction

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrTransactionIsNotConstructed is returned when a Transaction instance was
// not created through the NewTransaction or RestoreTransaction factory methods.
var ErrTransactionIsNotConstructed = errors.New(
	"Transaction must be created via NewTransaction constructor")

// Transaction is a ledger entry recording a money movement request for a
// user's balance.
//
// Transaction follows these invariants:
//   - Must have a valid unique identifier and an owner
//   - The amount is strictly positive
//   - Status transitions follow the Status state machine; approved and
//     rejected entries are immutable
//   - The balance credit that accompanies approval is the application
//     layer's responsibility and happens in the same storage transaction
type Transaction struct {
	id          kernel.UUID
	userID      kernel.UUID
	txType      Type
	amount      float64
	status      Status
	proofRef    string
	description string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewDeposit creates a pending deposit transaction for userID.
// proofRef points at the payment proof document in blob storage and is
// required for deposits.
func NewDeposit(
	id kernel.UUID,
	userID kernel.UUID,
	amount float64,
	proofRef string,
	description string,
	createdAt time.Time,
) (*Transaction, error) {
	t := &Transaction{
		txType:      TypeDeposit,
		status:      StatusPending,
		description: description,
		createdAt:   createdAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setUserID(userID),
		t.setAmount(amount),
		t.setProofRef(proofRef),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTransaction reconstructs a Transaction from persistent storage.
func RestoreTransaction(
	id kernel.UUID,
	userID kernel.UUID,
	txType Type,
	amount float64,
	status Status,
	proofRef string,
	description string,
	createdAt time.Time,
) (*Transaction, error) {
	t := &Transaction{
		proofRef:    proofRef,
		description: description,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setUserID(userID),
		t.setType(txType),
		t.setAmount(amount),
		t.setStatus(status),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the Transaction instance was properly constructed through a factory.
func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

// IsEqual compares two transactions by their unique identifiers.
func (t *Transaction) IsEqual(other *Transaction) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() kernel.UUID {
	return t.id
}

// UserID returns the identifier of the transaction's owner.
func (t *Transaction) UserID() kernel.UUID {
	return t.userID
}

// Type returns the transaction type.
func (t *Transaction) Type() Type {
	return t.txType
}

// Amount returns the transaction amount.
func (t *Transaction) Amount() float64 {
	return t.amount
}

// Status returns the current review status.
func (t *Transaction) Status() Status {
	return t.status
}

// ProofRef returns the blob storage reference of the payment proof.
func (t *Transaction) ProofRef() string {
	return t.proofRef
}

// Description returns the free-form description.
func (t *Transaction) Description() string {
	return t.description
}

// CreatedAt returns the creation timestamp.
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// IsDeposit reports whether the transaction is a deposit.
func (t *Transaction) IsDeposit() bool {
	return t.txType == TypeDeposit
}

// Approve moves a pending transaction to approved.
// A transaction already decided returns a conflict.
func (t *Transaction) Approve() error {
	newStatus, err := t.status.Approve()
	if err != nil {
		return err
	}

	t.status = newStatus
	return nil
}

// Reject moves a pending transaction to rejected.
// A transaction already decided returns a conflict.
func (t *Transaction) Reject() error {
	newStatus, err := t.status.Reject()
	if err != nil {
		return err
	}

	t.status = newStatus
	return nil
}

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	t.userID = userID
	return nil
}

func (t *Transaction) setType(txType Type) error {
	if err := txType.Validate(); err != nil {
		return err
	}
	t.txType = txType
	return nil
}

func (t *Transaction) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	t.amount = amount
	return nil
}

func (t *Transaction) setProofRef(proofRef string) error {
	if proofRef == "" {
		return errs.NewValueIsRequiredError("proofRef")
	}
	t.proofRef = proofRef
	return nil
}

func (t *Transaction) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}
