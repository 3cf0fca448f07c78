package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/core/ports"
)

// LedgerRepositories is the part of the unit of work the ledger writes through.
type LedgerRepositories interface {
	WarehouseRepoFactory
	OrderRepoFactory
}

// CapacityLedger records an allocation decision: it reserves the quantity on
// the chosen warehouse and inserts the order, both through the caller's unit
// of work so they commit or roll back together.
type CapacityLedger struct {
	now func() time.Time
}

// NewCapacityLedger creates a ledger stamping orders with now().
func NewCapacityLedger(now func() time.Time) CapacityLedger {
	return CapacityLedger{now: now}
}

// Commit writes the allocation.
//
// Returns:
//   - ports.ErrCommitConflict if the warehouse no longer has room for the quantity
//   - ports.ErrUpstreamUnavailable for any other storage failure
//
// On error nothing observable has been written once the caller rolls back.
func (l CapacityLedger) Commit(
	ctx context.Context,
	repos LedgerRepositories,
	cmd AllocateOrderCommand,
	allocation services.Allocation,
) (*order.Order, error) {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.TraderID(),
		cmd.Farmer(),
		cmd.Produce(),
		cmd.Quantity(),
		order.Assignment{
			WarehouseID: allocation.Warehouse.ID(),
			DistanceKm:  kernel.RoundKm(allocation.DistanceKm),
			ETAMinutes:  allocation.ETAMinutes,
		},
		l.now(),
	)
	if err != nil {
		return nil, err
	}

	err = repos.WarehouseRepository().ReserveCapacity(ctx, allocation.Warehouse.ID(), cmd.Quantity())
	if err != nil {
		return nil, storageError("reserve capacity", err)
	}

	if err = repos.OrderRepository().Add(ctx, o); err != nil {
		return nil, storageError("add order", err)
	}

	return o, nil
}

// storageError keeps conflicts and already classified failures as they are
// and marks everything else as an unavailable store.
func storageError(op string, err error) error {
	if errors.Is(err, ports.ErrCommitConflict) || errors.Is(err, ports.ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ports.ErrUpstreamUnavailable, op, err)
}
