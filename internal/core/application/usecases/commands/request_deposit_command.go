package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestDepositCommandIsNotConstructed = errors.New(
	"RequestDepositCommand must be created via NewRequestDepositCommand constructor",
)

// RequestDepositCommand represents a request to top up the caller's balance.
// The proof reference points at an already-uploaded payment document.
type RequestDepositCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	amount        float64
	proofRef      string
	description   string

	guard guard.ConstructorGuard
}

// NewRequestDepositCommand creates a command to request a deposit.
// Automatically generates a unique ID for the transaction.
func NewRequestDepositCommand(amount float64, proofRef string, description string) (RequestDepositCommand, error) {
	command := RequestDepositCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTransactionID(kernel.NewUUID()),
		command.setAmount(amount),
		command.setProofRef(proofRef),
	); err != nil {
		return RequestDepositCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestDepositCommand) Validate() error {
	return c.guard.Validate(ErrRequestDepositCommandIsNotConstructed)
}

// TransactionID returns the generated transaction ID.
func (c RequestDepositCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

// Amount returns the requested deposit amount.
func (c RequestDepositCommand) Amount() float64 {
	return c.amount
}

// ProofRef returns the payment proof reference.
func (c RequestDepositCommand) ProofRef() string {
	return c.proofRef
}

// Description returns the free-form description.
func (c RequestDepositCommand) Description() string {
	return c.description
}

func (c *RequestDepositCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}
	c.transactionID = transactionID
	return nil
}

func (c *RequestDepositCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}

func (c *RequestDepositCommand) setProofRef(proofRef string) error {
	if proofRef == "" {
		return errs.NewValueIsRequiredError("proofRef")
	}
	c.proofRef = proofRef
	return nil
}
