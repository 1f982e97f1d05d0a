// File: internal/jobs/moderation_digest.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"estatehub_backend/internal/config"
	"estatehub_backend/internal/listing"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ModerationDigestJob periodically logs the moderation queue depth and the
// listing state counts, so operators notice a growing backlog without
// opening the admin console.
type ModerationDigestJob struct {
	listingService *listing.Service
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewModerationDigestJob creates a new ModerationDigestJob.
func NewModerationDigestJob(
	listingService *listing.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *ModerationDigestJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ModerationDigestJob{
		listingService: listingService,
		logger:         logger.Named("ModerationDigestJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ModerationDigestJob) SetupAndStart() error {
	jobSpec := j.cfg.ModerationDigestSchedule
	if jobSpec == "" {
		j.logger.Warn("Moderation digest schedule not defined (MODERATION_DIGEST_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule moderation digest job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Moderation digest job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *ModerationDigestJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	summary, err := j.listingService.AdminSummary(ctx)
	if err != nil {
		j.logger.Error("Moderation digest run failed", zap.Error(err))
		return
	}

	j.logger.Info("Moderation digest",
		zap.Int64("pending_queue", summary.Pending),
		zap.Int64("total", summary.Total),
		zap.Int64("active", summary.Active),
		zap.Int64("inactive", summary.Inactive),
		zap.Int64("declined", summary.Declined),
		zap.Int64("accepted_lifetime", summary.Accepted),
	)
}

// Stop gracefully stops the cron scheduler.
func (j *ModerationDigestJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping moderation digest scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Moderation digest scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Moderation digest scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
