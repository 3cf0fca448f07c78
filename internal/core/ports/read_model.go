package ports

import (
	"context"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
)

// OrderView is an order joined with the warehouse it was allocated to.
type OrderView struct {
	ID            kernel.UUID
	FarmerName    string
	FarmerAddress string
	Crop          string
	Grade         string
	Quantity      float64
	DistanceKm    float64
	ETAMinutes    int
	CreatedAt     time.Time

	WarehouseID       kernel.UUID
	WarehouseName     string
	WarehouseLocation kernel.Location
}

// TraderTotals aggregates a trader's order book.
type TraderTotals struct {
	TotalOrders  int
	ActiveOrders int
	TotalVolume  float64
}

// OrderReadModel serves the trader-facing read side without loading aggregates.
type OrderReadModel interface {
	// ListTraderOrders returns the trader's orders created at or after since,
	// newest first. limit <= 0 means no limit.
	ListTraderOrders(ctx context.Context, traderID kernel.UUID, since time.Time, limit int) ([]OrderView, error)

	// TraderTotals counts all orders of the trader; ActiveOrders counts those
	// created at or after activeSince.
	TraderTotals(ctx context.Context, traderID kernel.UUID, activeSince time.Time) (TraderTotals, error)
}

// WarehouseReadModel serves the warehouse dashboard.
type WarehouseReadModel interface {
	// ListWarehouses returns every warehouse ordered by name, then id.
	ListWarehouses(ctx context.Context) ([]*warehouse.Warehouse, error)
}
