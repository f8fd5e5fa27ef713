package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/errs"
)

// pruneBatchSize bounds each retention sweep transaction so the delete never
// holds locks on a large range of rows.
const pruneBatchSize = 1000

// PruneNotificationsCommandHandler deletes read notifications older than the
// retention window. It runs on behalf of the system from a scheduled job, so
// unlike the other handlers it carries no access guard.
type PruneNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	retention  time.Duration
}

// NewPruneNotificationsCommandHandler creates a handler for the retention sweep.
func NewPruneNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	retention time.Duration,
) (PruneNotificationsCommandHandler, error) {
	if retention <= 0 {
		return PruneNotificationsCommandHandler{},
			errs.NewValueIsOutOfRangeError("retention", retention, "0s", "unbounded")
	}

	return PruneNotificationsCommandHandler{
		uowFactory: uowFactory,
		retention:  retention,
	}, nil
}

// Handle executes the sweep in batches, each in its own short transaction,
// and reports how many notifications were deleted. Unread notifications are
// never touched regardless of age.
func (h *PruneNotificationsCommandHandler) Handle(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-h.retention)

	var total int64
	for {
		affected, err := h.pruneBatch(ctx, cutoff)
		if err != nil {
			return total, err
		}

		total += affected
		if affected < pruneBatchSize {
			return total, nil
		}
	}
}

func (h *PruneNotificationsCommandHandler) pruneBatch(ctx context.Context, cutoff time.Time) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	affected, err := uow.NotificationRepository().DeleteReadOlderThan(ctx, cutoff, pruneBatchSize)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return affected, nil
}
