package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/transaction"
	"marketplace/internal/core/domain/services"
)

// RequestDepositCommandHandler handles a user requesting a balance top-up.
// The pending transaction and the admin review notifications commit together.
// Returns the new transaction's ID.
type RequestDepositCommandHandler struct {
	uowFactory LedgerUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewRequestDepositCommandHandler creates a handler for deposit requests.
func NewRequestDepositCommandHandler(uowFactory LedgerUoWFactory, guard access.Guard) RequestDepositCommandHandler {
	return RequestDepositCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the deposit request.
func (h *RequestDepositCommandHandler) Handle(ctx context.Context, cmd RequestDepositCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	caller, err := h.guard.RequireCaller(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	deposit, err := transaction.NewDeposit(
		cmd.TransactionID(), caller.ID(), cmd.Amount(),
		cmd.ProofRef(), cmd.Description(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.TransactionRepository().Add(ctx, deposit); err != nil {
		return kernel.UUID{}, err
	}

	if _, err = h.fanout.BroadcastToAdmins(ctx,
		uow.UserRepository(), uow.NotificationRepository(),
		notification.TypeDepositRequested, "Deposit pending review",
		fmt.Sprintf("%s requested a deposit of %.2f", caller.Name(), deposit.Amount()),
		notification.DepositPayload{
			TransactionID: deposit.ID(),
			Amount:        deposit.Amount(),
		}, now); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return deposit.ID(), nil
}
