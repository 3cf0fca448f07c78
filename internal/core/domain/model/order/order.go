package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Farmer describes where the goods come from.
type Farmer struct {
	Name     string
	Address  string
	Location kernel.Location
}

// Produce describes what is being delivered.
type Produce struct {
	Crop  string
	Grade string
}

// Assignment is the outcome of allocation: the chosen warehouse and the
// derived distance and ETA.
type Assignment struct {
	WarehouseID kernel.UUID
	DistanceKm  float64
	ETAMinutes  int
}

// Order is an allocated supply order.
//
// Order follows these invariants:
//   - Valid identifiers for the order, the trader and the warehouse
//   - Farmer name, address and location are present
//   - Crop and grade are present
//   - Quantity is strictly positive
//   - Distance is non-negative and ETA is non-negative
//
// All fields are fixed at construction; Order exposes getters only.
type Order struct {
	id        kernel.UUID
	traderID  kernel.UUID
	farmer    Farmer
	produce   Produce
	quantity  float64
	assigned  Assignment
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates an Order. Field errors are joined so callers see every
// problem at once.
//
// Example:
//
//	origin, _ := kernel.NewLocation(28.61, 77.20)
//	o, err := order.NewOrder(
//	    kernel.NewUUID(), traderID,
//	    order.Farmer{Name: "Ramesh", Address: "Village Road 4", Location: origin},
//	    order.Produce{Crop: "Wheat", Grade: "A"},
//	    500,
//	    order.Assignment{WarehouseID: wh.ID(), DistanceKm: 13.98, ETAMinutes: 40},
//	    time.Now(),
//	)
func NewOrder(
	id kernel.UUID,
	traderID kernel.UUID,
	farmer Farmer,
	produce Produce,
	quantity float64,
	assignment Assignment,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setTraderID(traderID),
		o.setFarmer(farmer),
		o.setProduce(produce),
		o.setQuantity(quantity),
		o.setAssignment(assignment),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// TraderID returns the identity of the trader who placed the order.
func (o *Order) TraderID() kernel.UUID {
	return o.traderID
}

func (o *Order) Farmer() Farmer {
	return o.farmer
}

func (o *Order) Produce() Produce {
	return o.produce
}

func (o *Order) Quantity() float64 {
	return o.quantity
}

// WarehouseID returns the warehouse the order was allocated to.
func (o *Order) WarehouseID() kernel.UUID {
	return o.assigned.WarehouseID
}

// DistanceKm returns the origin-to-warehouse distance rounded to two decimals.
func (o *Order) DistanceKm() float64 {
	return o.assigned.DistanceKm
}

func (o *Order) ETAMinutes() int {
	return o.assigned.ETAMinutes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTraderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("trader id", err)
	}
	o.traderID = id
	return nil
}

func (o *Order) setFarmer(f Farmer) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)

	var errList []error
	if f.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("farmer name"))
	}
	if f.Address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("farmer address"))
	}
	if err := f.Location.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.farmer = f
	return nil
}

func (o *Order) setProduce(p Produce) error {
	p.Crop = strings.TrimSpace(p.Crop)
	p.Grade = strings.TrimSpace(p.Grade)

	var errList []error
	if p.Crop == "" {
		errList = append(errList, errs.NewValueIsRequiredError("crop type"))
	}
	if p.Grade == "" {
		errList = append(errList, errs.NewValueIsRequiredError("grade"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.produce = p
	return nil
}

func (o *Order) setQuantity(quantity float64) error {
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setAssignment(a Assignment) error {
	if err := a.WarehouseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse id", err)
	}
	if a.DistanceKm < 0 || math.IsNaN(a.DistanceKm) {
		return errs.NewValueIsOutOfRangeError("distance km", a.DistanceKm, 0, math.MaxFloat64)
	}
	if a.ETAMinutes < 0 {
		return errs.NewValueIsOutOfRangeError("eta minutes", a.ETAMinutes, 0, math.MaxInt)
	}
	o.assigned = a
	return nil
}

func (o *Order) setCreatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = t.UTC()
	return nil
}
