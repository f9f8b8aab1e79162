// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3).
//
// # Available Jobs
//
// OrderTrackingJob refreshes the realtime hub on a fixed schedule, "@every 3s"
// by default. The hub also refreshes right after committed writes; the job
// covers writes announced elsewhere and recovers from failed refreshes.
// Overlapping runs are skipped.
//
// # Usage
//
//	tracking := jobs.NewOrderTrackingJob(hub, cfg.TrackingSchedule, 0, logger)
//	jobManager := jobs.NewJobManager(tracking)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed start stops the jobs already running. Refresh errors are handled
// and logged by the hub and never stop the schedule.
package jobs
