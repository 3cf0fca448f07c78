package queries_test

import (
	"context"
	"testing"
	"time"

	"agrilogistics/internal/adapters/out/memory"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func location(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

type fixture struct {
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{store: store, factory: memory.NewUnitOfWorkFactory(store)}
}

func (f *fixture) addWarehouse(t *testing.T, name string, capacity, load float64) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.RestoreWarehouse(kernel.NewUUID(), name, warehouse.North,
		location(t, 28.70, 77.10), capacity, load, warehouse.Details{})
	require.NoError(t, err)
	require.NoError(t, f.factory.Create().WarehouseRepository().Add(t.Context(), w))
	return w
}

func (f *fixture) addOrder(t *testing.T, traderID, warehouseID kernel.UUID, quantity float64, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), traderID,
		order.Farmer{Name: "Ramesh", Address: "Village Road 4", Location: location(t, 28.61, 77.20)},
		order.Produce{Crop: "Wheat", Grade: "A"},
		quantity,
		order.Assignment{WarehouseID: warehouseID, DistanceKm: 13.98, ETAMinutes: 40},
		createdAt)
	require.NoError(t, err)
	require.NoError(t, f.factory.Create().OrderRepository().Add(t.Context(), o))
	return o
}

type MockOrderReadModel struct{ mock.Mock }

func (m *MockOrderReadModel) ListTraderOrders(
	ctx context.Context,
	traderID kernel.UUID,
	since time.Time,
	limit int,
) ([]ports.OrderView, error) {
	args := m.Called(ctx, traderID, since, limit)
	views, _ := args.Get(0).([]ports.OrderView)
	return views, args.Error(1)
}

func (m *MockOrderReadModel) TraderTotals(ctx context.Context, traderID kernel.UUID, activeSince time.Time) (ports.TraderTotals, error) {
	args := m.Called(ctx, traderID, activeSince)
	totals, _ := args.Get(0).(ports.TraderTotals)
	return totals, args.Error(1)
}

type MockWarehouseReadModel struct{ mock.Mock }

func (m *MockWarehouseReadModel) ListWarehouses(ctx context.Context) ([]*warehouse.Warehouse, error) {
	args := m.Called(ctx)
	whs, _ := args.Get(0).([]*warehouse.Warehouse)
	return whs, args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	args := m.Called(ctx, address)
	result, _ := args.Get(0).(ports.GeocodeResult)
	return result, args.Error(1)
}
