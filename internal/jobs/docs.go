// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(monitorHandler, cfg.SLAMonitorSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// SLAMonitorJob sweeps open shipments and approved handoffs and raises SLA
// alerts. The schedule accepts standard five-field cron expressions and
// descriptors such as "@every 1m"; the default is every five minutes.
//
// # Overlap and errors
//
// Ticks that fire while a sweep is still running are skipped by the cron
// chain. The command handler additionally skips when another process holds
// the run-lock, which is logged as a skip and not as a failure. Failed runs
// are logged and the schedule keeps going.
package jobs
