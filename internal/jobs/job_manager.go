package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	slaMonitorJob *SLAMonitorJob
}

// NewJobManager creates a job manager running the SLA monitor on schedule.
func NewJobManager(monitor MonitorRunner, schedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		slaMonitorJob: NewSLAMonitorJob(monitor, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.slaMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start SLA monitor job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.slaMonitorJob.Stop()
}

// SLAMonitor returns the SLA monitor job, for one-off runs.
func (jm *JobManager) SLAMonitor() *SLAMonitorJob {
	return jm.slaMonitorJob
}
