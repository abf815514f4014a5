package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSLAMonitorSchedule runs the sweep every five minutes.
const DefaultSLAMonitorSchedule = "@every 5m"

// MonitorRunner runs one SLA sweep.
type MonitorRunner interface {
	Handle(ctx context.Context, cmd commands.RunSLAMonitorCommand) (commands.MonitorReport, error)
}

// SLAMonitorJob runs the SLA sweep on a cron schedule. A tick that fires
// while the previous sweep is still running is skipped.
type SLAMonitorJob struct {
	runner   MonitorRunner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewSLAMonitorJob creates the job. An empty schedule means
// DefaultSLAMonitorSchedule.
func NewSLAMonitorJob(runner MonitorRunner, schedule string, logger *slog.Logger) *SLAMonitorJob {
	if schedule == "" {
		schedule = DefaultSLAMonitorSchedule
	}
	logger = logger.With("component", "sla_monitor_job")
	cronLog := cronLogger{logger: logger}
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	return &SLAMonitorJob{
		runner:   runner,
		schedule: schedule,
		cron:     scheduler,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the sweep and starts the scheduler.
func (j *SLAMonitorJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA monitor job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *SLAMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "SLA monitor job stopped")
}

// RunOnce runs a single sweep outside the schedule.
func (j *SLAMonitorJob) RunOnce(ctx context.Context) (commands.MonitorReport, error) {
	cmd, err := commands.NewRunSLAMonitorCommand(j.now())
	if err != nil {
		return commands.MonitorReport{}, err
	}

	report, err := j.runner.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "SLA monitor run failed", "error", err)
		return report, err
	}
	if report.Skipped {
		j.logger.InfoContext(ctx, "SLA monitor run skipped, another run holds the lock")
		return report, nil
	}

	j.logger.InfoContext(ctx, "SLA monitor run finished",
		"shipments_checked", report.ShipmentsChecked,
		"handoffs_checked", report.HandoffsChecked,
		"alerts_raised", report.AlertsRaised,
		"alerts_existing", report.AlertsExisting,
		"failures", report.Failures)
	return report, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
