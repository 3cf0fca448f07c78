package commands_test

import (
	"context"
	"sync"
	"time"

	"agrilogistics/internal/core/application/usecases/commands"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) Add(ctx context.Context, w *warehouse.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*warehouse.Warehouse)
	return w, args.Error(1)
}

func (m *MockWarehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	args := m.Called(ctx)
	whs, _ := args.Get(0).([]*warehouse.Warehouse)
	return whs, args.Error(1)
}

func (m *MockWarehouseRepository) GetAllWithFreeCapacity(ctx context.Context, minFree float64) ([]*warehouse.Warehouse, error) {
	args := m.Called(ctx, minFree)
	whs, _ := args.Get(0).([]*warehouse.Warehouse)
	return whs, args.Error(1)
}

func (m *MockWarehouseRepository) ReserveCapacity(ctx context.Context, id kernel.UUID, quantity float64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByTrader(ctx context.Context, traderID kernel.UUID, since time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, traderID, since)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockAllocationUoW struct{ mock.Mock }

func (m *MockAllocationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationUoW) WarehouseRepository() ports.WarehouseRepository {
	args := m.Called()
	return args.Get(0).(ports.WarehouseRepository)
}

func (m *MockAllocationUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockAllocationUoW) TrackedAggregates() []any {
	args := m.Called()
	aggregates, _ := args.Get(0).([]any)
	return aggregates
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

type MockWarehouseUoWFactory struct{ mock.Mock }

func (m *MockWarehouseUoWFactory) Create() commands.WarehouseUoW {
	args := m.Called()
	return args.Get(0).(commands.WarehouseUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderAllocated(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// recordingObserver keeps outcomes in call order.
type recordingObserver struct {
	mu        sync.Mutex
	succeeded []warehouse.Region
	failed    []string
}

func (r *recordingObserver) AllocationSucceeded(region warehouse.Region, _ float64, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.succeeded = append(r.succeeded, region)
}

func (r *recordingObserver) AllocationFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, reason)
}

// nopPublisher drops events.
type nopPublisher struct{}

func (nopPublisher) PublishOrderAllocated(context.Context, *order.Order) error { return nil }
