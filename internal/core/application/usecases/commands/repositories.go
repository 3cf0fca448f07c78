// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"agrilogistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WarehouseRepoFactory provides access to warehouse repository within a transaction.
	WarehouseRepoFactory interface {
		WarehouseRepository() ports.WarehouseRepository
	}

	// AggregateTracker exposes what was written through the unit of work.
	AggregateTracker interface {
		TrackedAggregates() []any
	}

	// WarehouseUoW manages transactions for warehouse-only operations.
	WarehouseUoW interface {
		TxManager
		WarehouseRepoFactory
	}

	// WarehouseUoWFactory creates new warehouse unit of work instances.
	WarehouseUoWFactory interface {
		Create() WarehouseUoW
	}

	// AllocationUoW spans the eligibility read, the capacity reservation and the
	// order insert of one allocation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   candidates, err := uow.WarehouseRepository().GetAllWithFreeCapacity(ctx, qty)
	//   // ... choose, reserve, add order
	//
	//   err = uow.Commit(ctx)
	//   for _, aggregate := range uow.TrackedAggregates() { ... }
	AllocationUoW interface {
		TxManager
		WarehouseRepoFactory
		OrderRepoFactory
		AggregateTracker
	}

	// AllocationUoWFactory creates new allocation unit of work instances.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}
)
