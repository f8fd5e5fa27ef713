package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/transaction"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// RejectDepositCommandHandler handles an admin declining a pending deposit.
// No balance changes; the depositor is told the outcome.
type RejectDepositCommandHandler struct {
	uowFactory LedgerUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewRejectDepositCommandHandler creates a handler for deposit rejection.
func NewRejectDepositCommandHandler(uowFactory LedgerUoWFactory, guard access.Guard) RejectDepositCommandHandler {
	return RejectDepositCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the rejection.
// A transaction already decided returns a conflict and changes nothing.
func (h *RejectDepositCommandHandler) Handle(ctx context.Context, cmd RejectDepositCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.guard.RequireRole(ctx, user.RoleAdmin); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transactionRepo := uow.TransactionRepository()
	deposit, err := transactionRepo.Get(ctx, cmd.TransactionID())
	if err != nil {
		return err
	}

	if !deposit.IsDeposit() {
		return errs.NewConflictError("transaction",
			fmt.Sprintf("transaction %s is not a deposit", deposit.ID()))
	}

	if err = deposit.Reject(); err != nil {
		return err
	}

	if err = transactionRepo.UpdateWithStatusGuard(ctx, deposit, transaction.StatusPending); err != nil {
		return err
	}

	if err = h.fanout.Notify(ctx, uow.NotificationRepository(), deposit.UserID(),
		notification.TypeDepositRejected, "Deposit rejected",
		fmt.Sprintf("Your deposit of %.2f was declined", deposit.Amount()),
		notification.DepositPayload{
			TransactionID: deposit.ID(),
			Amount:        deposit.Amount(),
		}, time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
