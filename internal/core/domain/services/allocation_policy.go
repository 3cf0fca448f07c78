package services

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/pkg/errs"
)

var (
	// ErrInvalidQuantity is returned when the requested quantity is not strictly positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNoCapacity is returned when no candidate warehouse can hold the requested quantity.
	ErrNoCapacity = errors.New("no warehouse has sufficient free capacity")
)

// AllocationRequest is the part of an order the policy decides on.
type AllocationRequest struct {
	Origin   kernel.Location
	Quantity float64
}

// Allocation is the policy's decision.
type Allocation struct {
	Warehouse         *warehouse.Warehouse
	DistanceKm        float64
	TrafficMultiplier float64
	ETAMinutes        int
}

// AllocationPolicy selects the warehouse for an order and estimates its ETA.
//
// Selection is greedy and proximity based:
//   - Every candidate that can accept the quantity is considered, whatever its region
//   - Candidates are scanned in ascending id order
//   - The strictly nearest one wins, so equidistant ties go to the lowest id
//
// The ETA uses the chosen warehouse's region:
//
//	hours = distance / BaseSpeedKmph * multiplier(region)
//	eta   = round(hours * 60) + HandlingMinutes
//
// Example:
//
//	policy, _ := services.NewAllocationPolicy(services.DefaultAllocationConfig())
//	alloc, err := policy.Allocate(services.AllocationRequest{Origin: farm, Quantity: 500}, candidates)
//	if errors.Is(err, services.ErrNoCapacity) {
//	    // every warehouse is full
//	}
type AllocationPolicy struct {
	cfg AllocationConfig
}

// NewAllocationPolicy validates cfg and returns a policy bound to a private copy of it.
func NewAllocationPolicy(cfg AllocationConfig) (AllocationPolicy, error) {
	if err := cfg.Validate(); err != nil {
		return AllocationPolicy{}, err
	}
	return AllocationPolicy{cfg: cfg.clone()}, nil
}

// Config returns a copy of the policy configuration.
func (p AllocationPolicy) Config() AllocationConfig {
	return p.cfg.clone()
}

// Allocate chooses a warehouse among candidates for req.
//
// Returns:
//   - ErrInvalidQuantity before looking at candidates if req.Quantity <= 0
//   - ErrNoCapacity if no candidate can accept req.Quantity
//   - a validation error if the origin or a candidate was not constructed
//
// Allocate has no side effects; candidates are neither reordered nor mutated.
func (p AllocationPolicy) Allocate(req AllocationRequest, candidates []*warehouse.Warehouse) (Allocation, error) {
	if !(req.Quantity > 0) || math.IsInf(req.Quantity, 0) {
		return Allocation{}, fmt.Errorf("%w: got %v", ErrInvalidQuantity, req.Quantity)
	}
	if err := req.Origin.Validate(); err != nil {
		return Allocation{}, err
	}

	best, distance, err := p.nearest(req, candidates)
	if err != nil {
		return Allocation{}, err
	}

	multiplier := p.cfg.MultiplierFor(best.Region())
	return Allocation{
		Warehouse:         best,
		DistanceKm:        distance,
		TrafficMultiplier: multiplier,
		ETAMinutes:        p.ETAMinutes(distance, multiplier),
	}, nil
}

// ETAMinutes converts a distance and a traffic multiplier into minutes,
// including the fixed handling overhead. Halves round away from zero.
func (p AllocationPolicy) ETAMinutes(distanceKm, multiplier float64) int {
	travelHours := distanceKm / p.cfg.BaseSpeedKmph * multiplier
	return int(math.Round(travelHours*60)) + p.cfg.HandlingMinutes
}

func (p AllocationPolicy) nearest(
	req AllocationRequest,
	candidates []*warehouse.Warehouse,
) (*warehouse.Warehouse, float64, error) {
	ordered := slices.Clone(candidates)
	for _, w := range ordered {
		if err := w.Validate(); err != nil {
			return nil, 0, errs.NewValueIsInvalidErrorWithCause("candidate warehouse", err)
		}
	}
	slices.SortStableFunc(ordered, func(a, b *warehouse.Warehouse) int {
		return a.ID().Compare(b.ID())
	})

	var (
		best     *warehouse.Warehouse
		bestDist = math.Inf(1)
	)
	for _, w := range ordered {
		if !w.CanAccept(req.Quantity) {
			continue
		}

		d := req.Origin.DistanceTo(w.Location())
		if d < bestDist {
			best = w
			bestDist = d
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf("%w: %v requested", ErrNoCapacity, req.Quantity)
	}
	return best, bestDist, nil
}
