// Package ports defines the contracts between the allocation core and its
// infrastructure: repositories, the unit of work, read models and outbound
// collaborators such as the geocoder and the event publisher.
package ports

import (
	"context"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
)

// WarehouseRepository defines the persistence contract for warehouse aggregates.
type WarehouseRepository interface {
	// Add persists a new warehouse aggregate.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such warehouse exists.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)

	// GetAll returns every registered warehouse ordered by id.
	GetAll(ctx context.Context) ([]*warehouse.Warehouse, error)

	// GetAllWithFreeCapacity returns every warehouse whose free capacity
	// (capacity - current_load) is at least minFree, ordered by id.
	// No region filter is applied.
	//
	// Two calls within the same unit of work without an intervening
	// ReserveCapacity return the same set.
	//
	// Example:
	//   candidates, err := repo.GetAllWithFreeCapacity(ctx, 500)
	//   if err != nil {
	//       return fmt.Errorf("failed to load candidates: %w", err)
	//   }
	GetAllWithFreeCapacity(ctx context.Context, minFree float64) ([]*warehouse.Warehouse, error)

	// ReserveCapacity increments the warehouse's current load by quantity if,
	// and only if, current_load + quantity <= capacity at the moment of the write.
	// Returns ErrCommitConflict when the capacity is no longer there.
	ReserveCapacity(ctx context.Context, id kernel.UUID, quantity float64) error
}
