package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"marketplace/internal/core/application/usecases/commands"
)

// retentionSchedule runs the sweep hourly, at the top of the hour.
const retentionSchedule = "0 0 * * * *"

// NotificationRetentionJob periodically deletes read notifications that have
// aged past the retention window. The sweep is best effort: a failed run is
// logged and the next run picks up where it left off.
type NotificationRetentionJob struct {
	handler commands.PruneNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRetentionJob creates the retention sweep job.
func NewNotificationRetentionJob(
	handler commands.PruneNotificationsCommandHandler,
	logger *slog.Logger,
) *NotificationRetentionJob {
	return &NotificationRetentionJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_retention_job"),
	}
}

// Start schedules the retention sweep.
func (j *NotificationRetentionJob) Start() error {
	_, err := j.cron.AddFunc(retentionSchedule, func() {
		ctx := context.Background()

		deleted, handleErr := j.handler.Handle(ctx)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Notification retention sweep failed",
				"error", handleErr, "deleted", deleted)
			return
		}

		if deleted > 0 {
			j.logger.InfoContext(ctx, "Notification retention sweep completed", "deleted", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retention job started (running hourly)")
	return nil
}

// Stop stops the retention sweep.
func (j *NotificationRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification retention job stopped")
}
