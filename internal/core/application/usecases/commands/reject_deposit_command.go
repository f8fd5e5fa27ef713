package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRejectDepositCommandIsNotConstructed = errors.New(
	"RejectDepositCommand must be created via NewRejectDepositCommand constructor",
)

// RejectDepositCommand represents an admin declining a pending deposit.
type RejectDepositCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectDepositCommand creates a command to reject the given transaction.
func NewRejectDepositCommand(transactionID kernel.UUID) (RejectDepositCommand, error) {
	command := RejectDepositCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTransactionID(transactionID); err != nil {
		return RejectDepositCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectDepositCommand) Validate() error {
	return c.guard.Validate(ErrRejectDepositCommandIsNotConstructed)
}

// TransactionID returns the transaction to reject.
func (c RejectDepositCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

func (c *RejectDepositCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}
	c.transactionID = transactionID
	return nil
}
