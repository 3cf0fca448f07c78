package commands

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/pkg/errs"
	"agrilogistics/internal/pkg/guard"
)

var ErrCreateWarehouseCommandIsNotConstructed = errors.New(
	"CreateWarehouseCommand must be created via NewCreateWarehouseCommand constructor",
)

// CreateWarehouseCommand registers a new, empty warehouse.
//
// Example:
//
//	loc, _ := kernel.NewLocation(28.7041, 77.1025)
//	cmd, err := NewCreateWarehouseCommand(kernel.NewUUID(), "North_Hub_1", "north", loc, 1000,
//	    warehouse.Details{Address: "GT Karnal Road, Delhi", ManagerName: "Amit", ContactNumber: "+91 11 0000 0000"})
type CreateWarehouseCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	name        string
	region      warehouse.Region
	location    kernel.Location
	capacity    float64
	details     warehouse.Details

	guard guard.ConstructorGuard
}

// NewCreateWarehouseCommand validates the fields and parses the region.
// All problems are joined under ErrInvalidInput.
func NewCreateWarehouseCommand(
	warehouseID kernel.UUID,
	name string,
	region string,
	location kernel.Location,
	capacity float64,
	details warehouse.Details,
) (CreateWarehouseCommand, error) {
	cmd := CreateWarehouseCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWarehouseID(warehouseID),
		cmd.setName(name),
		cmd.setRegion(region),
		cmd.setLocation(location),
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateWarehouseCommand{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return cmd, nil
}

func (c CreateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseCommandIsNotConstructed)
}

func (c CreateWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateWarehouseCommand) Name() string {
	return c.name
}

func (c CreateWarehouseCommand) Region() warehouse.Region {
	return c.region
}

func (c CreateWarehouseCommand) Location() kernel.Location {
	return c.location
}

func (c CreateWarehouseCommand) Capacity() float64 {
	return c.capacity
}

func (c CreateWarehouseCommand) Details() warehouse.Details {
	return c.details
}

func (c *CreateWarehouseCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.warehouseID = id
	return nil
}

func (c *CreateWarehouseCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateWarehouseCommand) setRegion(region string) error {
	parsed, err := warehouse.ParseRegion(region)
	if err != nil {
		return err
	}
	c.region = parsed
	return nil
}

func (c *CreateWarehouseCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	c.location = location
	return nil
}

func (c *CreateWarehouseCommand) setCapacity(capacity float64) error {
	if !(capacity > 0) || math.IsInf(capacity, 0) {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 0, math.MaxFloat64)
	}
	c.capacity = capacity
	return nil
}
