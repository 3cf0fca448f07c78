package jobs

import (
	"context"
	"log/slog"
	"time"

	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/domain/model/warehouse"

	"github.com/robfig/cron/v3"
)

// DefaultSnapshotSchedule runs the snapshot every 30 seconds.
const DefaultSnapshotSchedule = "*/30 * * * * *"

// LoadRecorder receives each warehouse load snapshot.
type LoadRecorder interface {
	RecordWarehouseLoad(views []queries.WarehouseView)
}

// CapacitySnapshotJob periodically reads the warehouse dashboard, publishes
// the load gauges and warns about warehouses at critical load.
type CapacitySnapshotJob struct {
	handler  queries.GetWarehousesQueryHandler
	recorder LoadRecorder
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewCapacitySnapshotJob(
	handler queries.GetWarehousesQueryHandler,
	recorder LoadRecorder,
	schedule string,
	logger *slog.Logger,
) *CapacitySnapshotJob {
	return &CapacitySnapshotJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "capacity_snapshot_job"),
	}
}

// Start takes one snapshot immediately and then follows the schedule.
func (j *CapacitySnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.snapshot(context.Background())
	})
	if err != nil {
		return err
	}

	j.snapshot(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity snapshot job started", "schedule", j.schedule)
	return nil
}

func (j *CapacitySnapshotJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Capacity snapshot job stopped")
}

func (j *CapacitySnapshotJob) snapshot(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	views, err := j.handler.Handle(ctx, queries.NewGetWarehousesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Capacity snapshot failed", "error", err)
		return
	}

	j.recorder.RecordWarehouseLoad(views)
	for _, v := range views {
		if v.LoadLevel == warehouse.LoadCritical {
			j.logger.WarnContext(ctx, "Warehouse at critical load",
				"warehouse", v.Name,
				"load_percent", v.LoadPercent,
			)
		}
	}
}
