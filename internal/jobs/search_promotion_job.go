package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"valet/internal/core/application/usecases/commands"
)

// SearchPromotionJob moves scheduled reservations into the driver pool once
// their pickup window comes within the configured lead time. Runs every 30
// seconds; a missed tick is harmless because the next one picks up the same
// due orders.
type SearchPromotionJob struct {
	handler  commands.PromoteScheduledCommandHandler
	leadTime time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSearchPromotionJob creates the job. leadTime is how far before pickup
// an order becomes visible to drivers.
func NewSearchPromotionJob(
	handler commands.PromoteScheduledCommandHandler,
	leadTime time.Duration,
	logger *slog.Logger,
) *SearchPromotionJob {
	return &SearchPromotionJob{
		handler:  handler,
		leadTime: leadTime,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "search_promotion_job"),
	}
}

// Start schedules the job to run every 30 seconds.
func (j *SearchPromotionJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "search promotion job started",
		"lead_time", j.leadTime.String())
	return nil
}

// Stop halts the schedule. A run already in flight finishes on its own.
func (j *SearchPromotionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "search promotion job stopped")
}

func (j *SearchPromotionJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewPromoteScheduledCommand(time.Now().Add(j.leadTime))
	if err != nil {
		j.logger.ErrorContext(ctx, "building promotion command failed", "error", err)
		return
	}

	promoted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "search promotion run failed", "error", err)
		return
	}
	if promoted > 0 {
		j.logger.InfoContext(ctx, "orders promoted to search", "count", promoted)
	}
}
