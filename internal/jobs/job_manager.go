package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"valet/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	searchPromotionJob *SearchPromotionJob
}

// NewJobManager creates a manager owning all background jobs.
func NewJobManager(
	promoteHandler commands.PromoteScheduledCommandHandler,
	searchLeadTime time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		searchPromotionJob: NewSearchPromotionJob(promoteHandler, searchLeadTime, logger),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.searchPromotionJob.Start(); err != nil {
		return fmt.Errorf("failed to start search promotion job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job gracefully.
func (jm *JobManager) StopAll() {
	jm.searchPromotionJob.Stop()
}
