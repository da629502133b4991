// Package jobs provides scheduled background tasks for the bondi service.
//
// Jobs use github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// StorageProbeJob pings the configured storage on a schedule and records the
// outcome in a HealthStatus, which the HTTP /health endpoint reports.
//
// # Usage
//
//	status := jobs.NewHealthStatus()
//	probe := jobs.NewStorageProbeJob(storage, status, "*/10 * * * * *", time.Second, logger)
//	jobManager := jobs.NewJobManager(probe)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Probe failures are logged once when the storage becomes unreachable and
// once when it recovers; repeated failures in between are not logged again.
// Failed job starts stop any already running jobs.
package jobs
