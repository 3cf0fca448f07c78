package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/core/ports"
)

// Allocation failure reasons reported to the AllocationObserver.
const (
	ReasonInvalidInput        = "invalid_input"
	ReasonInvalidQuantity     = "invalid_quantity"
	ReasonNoCapacity          = "no_capacity"
	ReasonCommitConflict      = "commit_conflict"
	ReasonUpstreamUnavailable = "upstream_unavailable"
)

// AllocationObserver receives the outcome of every allocation attempt.
type AllocationObserver interface {
	AllocationSucceeded(region warehouse.Region, distanceKm float64, etaMinutes int)
	AllocationFailed(reason string)
}

// AllocationResult is what the trader sees after a successful allocation.
type AllocationResult struct {
	Order     *order.Order
	Warehouse *warehouse.Warehouse
}

// AllocateOrderCommandHandler runs one allocation end to end.
//
// Flow:
//  1. begin a unit of work
//  2. read every warehouse with free capacity >= quantity
//  3. let the AllocationPolicy pick the nearest one and compute the ETA
//  4. reserve the capacity and insert the order through the CapacityLedger
//  5. commit, then publish an event for each order written
//
// A lost race between step 2 and step 4 surfaces as ports.ErrCommitConflict.
// The handler does not retry against another warehouse; the caller may
// resubmit and get a fresh snapshot.
//
// Example:
//
//	handler := NewAllocateOrderCommandHandler(uowFactory, policy, ledger, publisher, observer, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoCapacity):
//	    // every warehouse is full
//	case errors.Is(err, ports.ErrCommitConflict):
//	    // retry from scratch
//	}
type AllocateOrderCommandHandler struct {
	uowFactory AllocationUoWFactory
	policy     services.AllocationPolicy
	ledger     CapacityLedger
	publisher  ports.EventPublisher
	observer   AllocationObserver
	logger     *slog.Logger
}

func NewAllocateOrderCommandHandler(
	uowFactory AllocationUoWFactory,
	policy services.AllocationPolicy,
	ledger CapacityLedger,
	publisher ports.EventPublisher,
	observer AllocationObserver,
	logger *slog.Logger,
) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		ledger:     ledger,
		publisher:  publisher,
		observer:   observer,
		logger:     logger.With("component", "allocate_order_handler"),
	}
}

// Handle allocates the order described by cmd.
func (h AllocateOrderCommandHandler) Handle(ctx context.Context, cmd AllocateOrderCommand) (AllocationResult, error) {
	result, err := h.allocate(ctx, cmd)
	if err != nil {
		reason := failureReason(err)
		h.observer.AllocationFailed(reason)
		h.logger.WarnContext(ctx, "Allocation failed",
			"trader_id", cmd.TraderID().String(),
			"quantity", cmd.Quantity(),
			"reason", reason,
			"error", err,
		)
		return AllocationResult{}, err
	}

	h.observer.AllocationSucceeded(result.Warehouse.Region(), result.Order.DistanceKm(), result.Order.ETAMinutes())
	h.logger.InfoContext(ctx, "Order allocated",
		"order_id", result.Order.ID().String(),
		"warehouse", result.Warehouse.Name(),
		"distance_km", result.Order.DistanceKm(),
		"eta_minutes", result.Order.ETAMinutes(),
	)
	return result, nil
}

func (h AllocateOrderCommandHandler) allocate(ctx context.Context, cmd AllocateOrderCommand) (AllocationResult, error) {
	if err := cmd.Validate(); err != nil {
		return AllocationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AllocationResult{}, storageError("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := uow.WarehouseRepository().GetAllWithFreeCapacity(ctx, cmd.Quantity())
	if err != nil {
		return AllocationResult{}, storageError("load candidates", err)
	}

	allocation, err := h.policy.Allocate(services.AllocationRequest{
		Origin:   cmd.Farmer().Location,
		Quantity: cmd.Quantity(),
	}, candidates)
	if err != nil {
		return AllocationResult{}, err
	}

	o, err := h.ledger.Commit(ctx, uow, cmd, allocation)
	if err != nil {
		return AllocationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AllocationResult{}, storageError("commit", err)
	}

	h.publish(ctx, uow.TrackedAggregates())

	return AllocationResult{Order: o, Warehouse: allocation.Warehouse}, nil
}

// publish is best effort: the allocation is already committed.
func (h AllocateOrderCommandHandler) publish(ctx context.Context, aggregates []any) {
	for _, aggregate := range aggregates {
		o, ok := aggregate.(*order.Order)
		if !ok {
			continue
		}
		if err := h.publisher.PublishOrderAllocated(ctx, o); err != nil {
			h.logger.ErrorContext(ctx, "Failed to publish order allocated event",
				"order_id", o.ID().String(),
				"error", err,
			)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		return ReasonInvalidQuantity
	case errors.Is(err, services.ErrNoCapacity):
		return ReasonNoCapacity
	case errors.Is(err, ports.ErrCommitConflict):
		return ReasonCommitConflict
	case errors.Is(err, ports.ErrUpstreamUnavailable):
		return ReasonUpstreamUnavailable
	default:
		return ReasonInvalidInput
	}
}

// SystemClock returns the current UTC time.
func SystemClock() time.Time {
	return time.Now().UTC()
}
