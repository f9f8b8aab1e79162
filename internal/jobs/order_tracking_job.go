package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTrackingSchedule matches the cadence realtime dashboards expect.
const DefaultTrackingSchedule = "@every 3s"

// Refresher re-queries realtime topics; implemented by realtime.Hub.
type Refresher interface {
	Refresh(ctx context.Context)
}

// OrderTrackingJob periodically refreshes every active realtime topic, so that
// subscribers see changes committed by other instances or written out of band.
type OrderTrackingJob struct {
	hub      Refresher
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderTrackingJob creates the job. An empty schedule falls back to
// DefaultTrackingSchedule; timeout bounds one refresh round.
func NewOrderTrackingJob(hub Refresher, schedule string, timeout time.Duration, logger *slog.Logger) *OrderTrackingJob {
	if schedule == "" {
		schedule = DefaultTrackingSchedule
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &OrderTrackingJob{
		hub:      hub,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "order_tracking_job"),
	}
}

// Start schedules the refresh.
func (j *OrderTrackingJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Order tracking job started", "schedule", j.schedule)
	return nil
}

func (j *OrderTrackingJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.hub.Refresh(ctx)
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *OrderTrackingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Order tracking job stopped")
}
