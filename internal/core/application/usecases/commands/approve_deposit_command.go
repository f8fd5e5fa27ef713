package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrApproveDepositCommandIsNotConstructed = errors.New(
	"ApproveDepositCommand must be created via NewApproveDepositCommand constructor",
)

// ApproveDepositCommand represents an admin approving a pending deposit.
type ApproveDepositCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveDepositCommand creates a command to approve the given transaction.
func NewApproveDepositCommand(transactionID kernel.UUID) (ApproveDepositCommand, error) {
	command := ApproveDepositCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTransactionID(transactionID); err != nil {
		return ApproveDepositCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveDepositCommand) Validate() error {
	return c.guard.Validate(ErrApproveDepositCommandIsNotConstructed)
}

// TransactionID returns the transaction to approve.
func (c ApproveDepositCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

func (c *ApproveDepositCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}
	c.transactionID = transactionID
	return nil
}
