package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"agrilogistics/internal/adapters/out/geocoder"
	"agrilogistics/internal/adapters/out/kafka"
	"agrilogistics/internal/adapters/out/memory"
	"agrilogistics/internal/adapters/out/postgres"
	"agrilogistics/internal/adapters/out/postgres/readmodel"
	"agrilogistics/internal/core/application/usecases/commands"
	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/jobs"
	"agrilogistics/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	uowFactory     ports.UnitOfWorkFactory
	orderReads     ports.OrderReadModel
	warehouseReads ports.WarehouseReadModel
	publisher      ports.EventPublisher
	geocoder       ports.Geocoder
	policy         services.AllocationPolicy

	closers []io.Closer
}

// NewCompositionRoot wires every adapter. A nil gormDB selects the in-memory
// store.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := services.NewAllocationPolicy(cfg.Allocation)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
		policy:  policy,
	}

	if gormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		reads := readmodel.NewGormReadModel(gormDB)
		c.orderReads, c.warehouseReads = reads, reads
	} else {
		logger.Warn("DB_HOST is empty, using the in-memory store")
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.orderReads, c.warehouseReads = store, store
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrderAllocatedTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher)
	} else {
		c.publisher = kafka.NopPublisher{}
	}

	var cache geocoder.Cache
	if cfg.RedisURL != "" {
		redisCache, cacheErr := geocoder.NewRedisCacheFromURL(cfg.RedisURL, cfg.GeocodeCacheTTL)
		if cacheErr != nil {
			return nil, cacheErr
		}
		cache = redisCache
		c.closers = append(c.closers, redisCache)
	}
	geoCfg := geocoder.DefaultConfig()
	geoCfg.BaseURL = cfg.NominatimURL
	geoCfg.UserAgent = cfg.NominatimUserAgent
	c.geocoder = geocoder.NewNominatim(geoCfg, cache, logger)

	return c, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var err error
	for _, closer := range c.closers {
		err = errors.Join(err, closer.Close())
	}
	return err
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateOrderCommandHandler(
		f,
		c.policy,
		commands.NewCapacityLedger(commands.SystemClock),
		c.publisher,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateWarehouseCommandHandler() commands.CreateWarehouseCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateWarehouseCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetWarehousesQueryHandler() queries.GetWarehousesQueryHandler {
	return queries.NewGetWarehousesQueryHandler(c.warehouseReads)
}

func (c *CompositionRoot) CreateGetTraderStatsQueryHandler() queries.GetTraderStatsQueryHandler {
	return queries.NewGetTraderStatsQueryHandler(c.orderReads, commands.SystemClock)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.orderReads)
}

func (c *CompositionRoot) CreateGeocodeAddressQueryHandler() queries.GeocodeAddressQueryHandler {
	return queries.NewGeocodeAddressQueryHandler(c.geocoder)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewCapacitySnapshotJob(c.CreateGetWarehousesQueryHandler(), c.metrics, c.cfg.SnapshotSchedule, c.logger),
	)
}

type seedWarehouse struct {
	name     string
	region   string
	lat, lng float64
	capacity float64
}

var defaultWarehouses = []seedWarehouse{
	{"North_Hub_1", "North", 28.7041, 77.1025, 1000},
	{"South_Hub_1", "South", 13.0827, 80.2707, 2000},
	{"West_Hub_1", "West", 19.0760, 72.8777, 1500},
}

// SeedWarehouses registers the three default hubs when the registry is empty.
func (c *CompositionRoot) SeedWarehouses(ctx context.Context) error {
	existing, err := c.warehouseReads.ListWarehouses(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	handler := c.CreateCreateWarehouseCommandHandler()
	for _, s := range defaultWarehouses {
		loc, locErr := kernel.NewLocation(s.lat, s.lng)
		if locErr != nil {
			return locErr
		}
		cmd, cmdErr := commands.NewCreateWarehouseCommand(kernel.NewUUID(), s.name, s.region, loc, s.capacity, warehouse.Details{})
		if cmdErr != nil {
			return cmdErr
		}
		if _, err = handler.Handle(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}
