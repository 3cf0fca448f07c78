// Package memory keeps warehouses and orders in process memory. It backs
// local runs without a database and the concurrency tests of the allocation
// flow. A single Store is shared by every unit of work created from it.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"
)

type warehouseRecord struct {
	id       kernel.UUID
	name     string
	region   warehouse.Region
	location kernel.Location
	details  warehouse.Details
	capacity float64
	load     float64
}

func recordOf(w *warehouse.Warehouse) warehouseRecord {
	return warehouseRecord{
		id:       w.ID(),
		name:     w.Name(),
		region:   w.Region(),
		location: w.Location(),
		details:  w.Details(),
		capacity: w.Capacity(),
		load:     w.CurrentLoad(),
	}
}

func (r warehouseRecord) restore() (*warehouse.Warehouse, error) {
	return warehouse.RestoreWarehouse(r.id, r.name, r.region, r.location, r.capacity, r.load, r.details)
}

// Store is the shared state. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	warehouses map[kernel.UUID]warehouseRecord
	orders     []*order.Order
	orderIndex map[kernel.UUID]int
}

func NewStore() *Store {
	return &Store{
		warehouses: make(map[kernel.UUID]warehouseRecord),
		orderIndex: make(map[kernel.UUID]int),
	}
}

// ListWarehouses implements ports.WarehouseReadModel.
func (s *Store) ListWarehouses(_ context.Context) ([]*warehouse.Warehouse, error) {
	s.mu.RLock()
	records := make([]warehouseRecord, 0, len(s.warehouses))
	for _, r := range s.warehouses {
		records = append(records, r)
	}
	s.mu.RUnlock()

	slices.SortFunc(records, func(a, b warehouseRecord) int {
		return cmp.Or(strings.Compare(a.name, b.name), a.id.Compare(b.id))
	})
	return restoreAll(records)
}

// ListTraderOrders implements ports.OrderReadModel.
func (s *Store) ListTraderOrders(
	_ context.Context,
	traderID kernel.UUID,
	since time.Time,
	limit int,
) ([]ports.OrderView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]ports.OrderView, 0)
	for _, o := range newestFirst(s.traderOrders(traderID, since)) {
		if limit > 0 && len(views) == limit {
			break
		}
		wh := s.warehouses[o.WarehouseID()]
		views = append(views, ports.OrderView{
			ID:                o.ID(),
			FarmerName:        o.Farmer().Name,
			FarmerAddress:     o.Farmer().Address,
			Crop:              o.Produce().Crop,
			Grade:             o.Produce().Grade,
			Quantity:          o.Quantity(),
			DistanceKm:        o.DistanceKm(),
			ETAMinutes:        o.ETAMinutes(),
			CreatedAt:         o.CreatedAt(),
			WarehouseID:       o.WarehouseID(),
			WarehouseName:     wh.name,
			WarehouseLocation: wh.location,
		})
	}
	return views, nil
}

// TraderTotals implements ports.OrderReadModel.
func (s *Store) TraderTotals(_ context.Context, traderID kernel.UUID, activeSince time.Time) (ports.TraderTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals ports.TraderTotals
	for _, o := range s.traderOrders(traderID, time.Time{}) {
		totals.TotalOrders++
		totals.TotalVolume += o.Quantity()
		if !o.CreatedAt().Before(activeSince) {
			totals.ActiveOrders++
		}
	}
	return totals, nil
}

func (s *Store) traderOrders(traderID kernel.UUID, since time.Time) []*order.Order {
	var out []*order.Order
	for _, o := range s.orders {
		if o.TraderID().IsEqual(traderID) && !o.CreatedAt().Before(since) {
			out = append(out, o)
		}
	}
	return out
}

func newestFirst(orders []*order.Order) []*order.Order {
	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		return cmp.Or(b.CreatedAt().Compare(a.CreatedAt()), b.ID().Compare(a.ID()))
	})
	return orders
}

func restoreAll(records []warehouseRecord) ([]*warehouse.Warehouse, error) {
	out := make([]*warehouse.Warehouse, 0, len(records))
	for _, r := range records {
		w, err := r.restore()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
