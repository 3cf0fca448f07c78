package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "agrilogistics/internal/adapters/out/postgres"
	"agrilogistics/internal/adapters/out/postgres/pgtest"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, warehouses").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin is safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReserveAndAddCommitTogether() {
	ctx := suite.T().Context()
	hub := suite.addWarehouse("North_Hub_1", 1000, 900)
	o := newOrder(suite.T(), hub.ID(), 100)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.WarehouseRepository().ReserveCapacity(ctx, hub.ID(), 100))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	after, err := suite.factory.Create().WarehouseRepository().Get(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.InDelta(1000.0, after.CurrentLoad(), 0, "capacity fully used at the boundary")

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.WarehouseID().IsEqual(hub.ID()))
	suite.Equal([]any{o}, uow.TrackedAggregates())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackUndoesReservation() {
	ctx := suite.T().Context()
	hub := suite.addWarehouse("North_Hub_1", 1000, 0)
	o := newOrder(suite.T(), hub.ID(), 500)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.WarehouseRepository().ReserveCapacity(ctx, hub.ID(), 500))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	after, err := suite.factory.Create().WarehouseRepository().Get(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.InDelta(0.0, after.CurrentLoad(), 0)

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
	suite.Empty(uow.TrackedAggregates())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SecondReservationConflicts() {
	ctx := suite.T().Context()
	hub := suite.addWarehouse("North_Hub_1", 1000, 0)

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))

	// both transactions saw the warehouse as a candidate
	for _, uow := range []ports.UnitOfWork{first, second} {
		candidates, err := uow.WarehouseRepository().GetAllWithFreeCapacity(ctx, 600)
		suite.Require().NoError(err)
		suite.Len(candidates, 1)
	}

	suite.Require().NoError(first.WarehouseRepository().ReserveCapacity(ctx, hub.ID(), 600))

	// second blocks on the row lock until first finishes, then sees 600 taken
	done := make(chan error, 1)
	go func() {
		done <- second.WarehouseRepository().ReserveCapacity(ctx, hub.ID(), 600)
	}()

	time.Sleep(100 * time.Millisecond)
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().ErrorIs(<-done, ports.ErrCommitConflict)
	suite.Require().NoError(second.Rollback(ctx))

	after, err := suite.factory.Create().WarehouseRepository().Get(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.InDelta(600.0, after.CurrentLoad(), 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentReservationsNeverOversell() {
	ctx := suite.T().Context()
	hub := suite.addWarehouse("North_Hub_1", 1000, 0)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			if err := uow.WarehouseRepository().ReserveCapacity(ctx, hub.ID(), 150); err != nil {
				return
			}
			if err := uow.Commit(ctx); err != nil {
				return
			}
			mu.Lock()
			committed++
			mu.Unlock()
		}()
	}
	wg.Wait()

	after, err := suite.factory.Create().WarehouseRepository().Get(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.Equal(6, committed)
	suite.InDelta(900.0, after.CurrentLoad(), 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := suite.T().Context()
	hub := suite.addWarehouse("West_Hub_1", 1500, 0)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.WarehouseRepository().ReserveCapacity(ctx, hub.ID(), 10))

	after, err := suite.factory.Create().WarehouseRepository().Get(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.InDelta(10.0, after.CurrentLoad(), 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) addWarehouse(name string, capacity, load float64) *warehouse.Warehouse {
	loc, err := kernel.NewLocation(28.70, 77.10)
	suite.Require().NoError(err)
	w, err := warehouse.RestoreWarehouse(kernel.NewUUID(), name, warehouse.North, loc, capacity, load, warehouse.Details{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().WarehouseRepository().Add(suite.T().Context(), w))
	return w
}

func newOrder(t *testing.T, warehouseID kernel.UUID, quantity float64) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation(28.61, 77.20)
	if err != nil {
		t.Fatal(err)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		order.Farmer{Name: "Ramesh", Address: "Village Road 4", Location: loc},
		order.Produce{Crop: "Wheat", Grade: "A"},
		quantity,
		order.Assignment{WarehouseID: warehouseID, DistanceKm: 13.98, ETAMinutes: 40},
		time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration suite in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
