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

// ApproveDepositCommandHandler handles an admin approving a pending deposit.
//
// The status change and the balance credit live in one transaction, guarded
// on the pending status, so a deposit is credited at most once no matter how
// many admins race on it.
type ApproveDepositCommandHandler struct {
	uowFactory LedgerUoWFactory
	guard      access.Guard
	fanout     services.NotificationFanout
}

// NewApproveDepositCommandHandler creates a handler for deposit approval.
func NewApproveDepositCommandHandler(uowFactory LedgerUoWFactory, guard access.Guard) ApproveDepositCommandHandler {
	return ApproveDepositCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		fanout:     services.NewNotificationFanout(),
	}
}

// Handle processes the approval.
// A transaction already decided returns a conflict and changes nothing.
func (h *ApproveDepositCommandHandler) Handle(ctx context.Context, cmd ApproveDepositCommand) error {
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

	if err = deposit.Approve(); err != nil {
		return err
	}

	if err = transactionRepo.UpdateWithStatusGuard(ctx, deposit, transaction.StatusPending); err != nil {
		return err
	}

	if err = uow.UserRepository().CreditBalance(ctx, deposit.UserID(), deposit.Amount()); err != nil {
		return err
	}

	if err = h.fanout.Notify(ctx, uow.NotificationRepository(), deposit.UserID(),
		notification.TypeDepositApproved, "Deposit approved",
		fmt.Sprintf("Your deposit of %.2f was credited", deposit.Amount()),
		notification.DepositPayload{
			TransactionID: deposit.ID(),
			Amount:        deposit.Amount(),
		}, time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
