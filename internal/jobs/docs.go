// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path never triggers.
//
// # Available Jobs
//
// 1. NotificationRetentionJob - Runs hourly to delete read notifications older than the retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(pruneNotificationsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The retention sweep is best effort. A failed run is logged and never
// retried within the hour; the next scheduled run resumes the sweep.
package jobs
