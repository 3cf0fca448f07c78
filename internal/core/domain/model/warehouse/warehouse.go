package warehouse

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/pkg/errs"
)

var (
	// ErrWarehouseIsNotConstructed is returned when a Warehouse was not created
	// through NewWarehouse or RestoreWarehouse.
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")

	// ErrInsufficientCapacity is returned by Reserve when the requested quantity
	// does not fit into the remaining free capacity.
	ErrInsufficientCapacity = errors.New("insufficient free capacity")
)

// Details carries the administrative attributes of a warehouse. None of them
// take part in allocation.
type Details struct {
	Address       string
	ManagerName   string
	ContactNumber string
}

// Warehouse is the aggregate root for a storage hub.
//
// Warehouse follows these invariants:
//   - Must have a valid identifier, non-empty name, region and location
//   - Capacity is a finite non-negative quantity
//   - 0 <= currentLoad <= capacity
//   - Can only be created through NewWarehouse or RestoreWarehouse
//
// The load only changes through Reserve, which refuses any increment that
// would push it past capacity.
type Warehouse struct {
	id       kernel.UUID
	name     string
	region   Region
	location kernel.Location
	details  Details

	capacity    float64
	currentLoad float64

	isConstructed bool
}

// NewWarehouse registers a new, empty warehouse.
//
// Example:
//
//	loc, _ := kernel.NewLocation(28.70, 77.10)
//	wh, err := warehouse.NewWarehouse(kernel.NewUUID(), "North_Hub_1", warehouse.North, loc, 1000, warehouse.Details{})
func NewWarehouse(
	id kernel.UUID,
	name string,
	region Region,
	location kernel.Location,
	capacity float64,
	details Details,
) (*Warehouse, error) {
	return RestoreWarehouse(id, name, region, location, capacity, 0, details)
}

// RestoreWarehouse rebuilds a Warehouse from persisted state, including its
// current load. The load must respect the capacity invariant.
func RestoreWarehouse(
	id kernel.UUID,
	name string,
	region Region,
	location kernel.Location,
	capacity float64,
	currentLoad float64,
	details Details,
) (*Warehouse, error) {
	w := &Warehouse{
		details:       details,
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setRegion(region),
		w.setLocation(location),
		w.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	if err := w.setCurrentLoad(currentLoad); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate ensures the Warehouse was created through a constructor.
func (w *Warehouse) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWarehouseIsNotConstructed
	}
	return nil
}

// IsEqual compares warehouses by identity.
func (w *Warehouse) IsEqual(other *Warehouse) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

func (w *Warehouse) Name() string {
	return w.name
}

func (w *Warehouse) Region() Region {
	return w.region
}

func (w *Warehouse) Location() kernel.Location {
	return w.location
}

func (w *Warehouse) Details() Details {
	return w.details
}

// Capacity returns the maximum load the warehouse can hold.
func (w *Warehouse) Capacity() float64 {
	return w.capacity
}

// CurrentLoad returns the quantity already committed to the warehouse.
func (w *Warehouse) CurrentLoad() float64 {
	return w.currentLoad
}

// FreeCapacity returns capacity minus current load.
func (w *Warehouse) FreeCapacity() float64 {
	return w.capacity - w.currentLoad
}

// CanAccept reports whether quantity fits into the free capacity. A warehouse
// whose free capacity equals the quantity exactly can accept it.
func (w *Warehouse) CanAccept(quantity float64) bool {
	return quantity > 0 && w.currentLoad+quantity <= w.capacity
}

// Reserve adds quantity to the current load.
//
// Returns:
//   - errs.ErrValueIsInvalid if quantity is not positive
//   - ErrInsufficientCapacity if the quantity does not fit
//
// The load is left untouched on error.
func (w *Warehouse) Reserve(quantity float64) error {
	if err := w.Validate(); err != nil {
		return err
	}

	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}

	if !w.CanAccept(quantity) {
		return fmt.Errorf("%w: warehouse %s has %.2f free, %.2f requested",
			ErrInsufficientCapacity, w.id, w.FreeCapacity(), quantity)
	}

	w.currentLoad += quantity
	return nil
}

// LoadPercent returns utilisation in percent rounded to one decimal place.
// A zero-capacity warehouse reports 100.
func (w *Warehouse) LoadPercent() float64 {
	if w.capacity == 0 {
		return 100
	}
	return math.Round(w.currentLoad/w.capacity*1000) / 10
}

// LoadLevel classifies LoadPercent for display.
func (w *Warehouse) LoadLevel() LoadLevel {
	return LevelForPercent(w.LoadPercent())
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setRegion(region Region) error {
	parsed, err := ParseRegion(string(region))
	if err != nil {
		return err
	}
	w.region = parsed
	return nil
}

func (w *Warehouse) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	w.location = location
	return nil
}

func (w *Warehouse) setCapacity(capacity float64) error {
	if capacity < 0 || math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 0, math.MaxFloat64)
	}
	w.capacity = capacity
	return nil
}

func (w *Warehouse) setCurrentLoad(load float64) error {
	if load < 0 || load > w.capacity || math.IsNaN(load) {
		return errs.NewValueIsOutOfRangeError("current load", load, 0, w.capacity)
	}
	w.currentLoad = load
	return nil
}
