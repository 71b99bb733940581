// Package jobs provides scheduled background tasks for the tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order lifecycle tracking.
//
// # Available Jobs
//
// 1. StatusEscalationJob - Runs on a configurable interval to reclassify the
// staleness severity of every active in-transit order
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(escalateHandler, 1*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The escalation job uses the "@every" cron descriptor with the configured
// interval. Ticks of a single cron entry run sequentially, so a slow sweep
// delays the next tick instead of overlapping with it.
//
// # Error Handling
//
// A failed sweep tick is logged and skipped; the schedule keeps running and
// the next tick retries classification from the current database state.
package jobs
