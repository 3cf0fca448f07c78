package services

import (
	"fmt"
	"maps"
	"math"

	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/pkg/errs"
)

const (
	// DefaultBaseSpeedKmph is the average road speed of a loaded truck.
	DefaultBaseSpeedKmph = 40.0
	// DefaultHandlingMinutes is the fixed dispatch and unloading overhead added to every ETA.
	DefaultHandlingMinutes = 15
	// DefaultTrafficMultiplier applies to regions without an entry in the table.
	DefaultTrafficMultiplier = 1.0
)

// AllocationConfig holds the tunables of the allocation policy. It is passed to
// NewAllocationPolicy explicitly so tests and deployments can swap tables.
type AllocationConfig struct {
	// BaseSpeedKmph is the free-flow travel speed; must be > 0.
	BaseSpeedKmph float64
	// HandlingMinutes is added to the travel time of every ETA; must be >= 0.
	HandlingMinutes int
	// TrafficMultipliers scales travel time by the region of the chosen warehouse.
	// 1.0 is clear roads, 1.5 is heavy traffic.
	TrafficMultipliers map[warehouse.Region]float64
	// DefaultMultiplier applies to regions missing from TrafficMultipliers.
	DefaultMultiplier float64
}

// DefaultAllocationConfig returns the production table.
func DefaultAllocationConfig() AllocationConfig {
	return AllocationConfig{
		BaseSpeedKmph:   DefaultBaseSpeedKmph,
		HandlingMinutes: DefaultHandlingMinutes,
		TrafficMultipliers: map[warehouse.Region]float64{
			warehouse.North: 1.2,
			warehouse.South: 1.1,
			warehouse.East:  1.4,
			warehouse.West:  1.0,
		},
		DefaultMultiplier: DefaultTrafficMultiplier,
	}
}

// Validate checks that every value yields a finite, non-negative ETA.
func (c AllocationConfig) Validate() error {
	if !(c.BaseSpeedKmph > 0) || math.IsInf(c.BaseSpeedKmph, 0) {
		return errs.NewValueIsInvalidErrorWithCause("base speed",
			fmt.Errorf("%v is not a positive speed", c.BaseSpeedKmph))
	}
	if c.HandlingMinutes < 0 {
		return errs.NewValueIsOutOfRangeError("handling minutes", c.HandlingMinutes, 0, math.MaxInt)
	}
	if !(c.DefaultMultiplier > 0) {
		return errs.NewValueIsInvalidErrorWithCause("default multiplier",
			fmt.Errorf("%v is not a positive multiplier", c.DefaultMultiplier))
	}
	for region, m := range c.TrafficMultipliers {
		if !(m > 0) || math.IsInf(m, 0) {
			return errs.NewValueIsInvalidErrorWithCause("traffic multiplier",
				fmt.Errorf("%v for region %s is not a positive multiplier", m, region))
		}
	}
	return nil
}

// MultiplierFor returns the traffic multiplier of region, or DefaultMultiplier.
func (c AllocationConfig) MultiplierFor(region warehouse.Region) float64 {
	if m, ok := c.TrafficMultipliers[region]; ok {
		return m
	}
	return c.DefaultMultiplier
}

func (c AllocationConfig) clone() AllocationConfig {
	c.TrafficMultipliers = maps.Clone(c.TrafficMultipliers)
	return c
}
