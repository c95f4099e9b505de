package eventlog

import (
	"context"
	"time"

	"github.com/harukigames/gamecore/internal/logger"
)

// CleanupJob is a job that cleans up old events
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
	}
}

// Process executes the cleanup job
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Starting event log cleanup job", "retentionDays", j.retentionDays)

	start := time.Now()
	count, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	duration := time.Since(start)

	if err != nil {
		log.Error("Event log cleanup failed", "error", err, "duration", duration)
		return err
	}

	log.Info("Event log cleanup completed", "deletedCount", count, "duration", duration)
	return nil
}

// Run executes Process on the given interval until the context is cancelled.
func (j *CleanupJob) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Process(ctx); err != nil {
				logger.FromContext(ctx).Error("Scheduled event log cleanup failed", "error", err)
			}
		}
	}
}
