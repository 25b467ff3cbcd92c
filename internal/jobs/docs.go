// Package jobs provides the scheduled background tasks of the service.
//
// Jobs run on github.com/robfig/cron/v3 schedules and call command
// handlers; they hold no business logic of their own.
//
// # Available Jobs
//
// SearchPromotionJob runs every 30 seconds and moves scheduled
// reservations into the driver search pool once their pickup time comes
// within the configured lead window.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(promoteHandler, leadTime, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried by the next tick; orders that could
// not be promoted (for example because a driver claimed them in between)
// are skipped, not errors.
package jobs
