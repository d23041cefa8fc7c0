package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/balu-pos/balu-pos/internal/reporting"
)

// ReportWarmupJob pre-populates the end-of-day and top-product caches so the
// first dashboard request of the morning hits warm keys.
type ReportWarmupJob struct {
	Reporting *reporting.Service
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reportingSvc *reporting.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Reporting: reportingSvc,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reporting == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	date := payload.Date
	if date == "" {
		date = j.clock().AddDate(0, 0, -1).Format("2006-01-02")
	}

	logger := j.logger().With(slog.String("date", date))
	if _, err := j.Reporting.EndOfDayBalance(ctx, date); err != nil {
		logger.Error("warm end of day balance", slog.Any("error", err))
		return err
	}
	if _, err := j.Reporting.TopSoldProducts(ctx, nil); err != nil {
		logger.Error("warm top sold products", slog.Any("error", err))
		return err
	}
	logger.Info("report caches warmed")
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
