// Package jobs provides scheduled background tasks for the allocation service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// CapacitySnapshotJob reads every warehouse, refreshes the
// warehouse_load_percent gauges and logs a warning for each warehouse above
// 90% load. It runs once at start and then every 30 seconds by default.
//
// # Usage
//
//	snapshot := jobs.NewCapacitySnapshotJob(getWarehousesHandler, metrics, jobs.DefaultSnapshotSchedule, logger)
//	jobManager := jobs.NewJobManager(snapshot)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed snapshot is logged and the previous gauges are kept. Failed job
// starts stop any already running jobs.
package jobs
