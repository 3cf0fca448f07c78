package commands

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/pkg/errs"
	"agrilogistics/internal/pkg/guard"
)

var ErrAllocateOrderCommandIsNotConstructed = errors.New(
	"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
)

// AllocateOrderCommand asks for a farmer's produce to be routed to the nearest
// warehouse that can hold it.
//
// Example:
//
//	farm, _ := kernel.NewLocation(28.61, 77.20)
//	cmd, err := NewAllocateOrderCommand(traderID,
//	    order.Farmer{Name: "Ramesh", Address: "Village Road 4", Location: farm},
//	    order.Produce{Crop: "Wheat", Grade: "A"},
//	    500,
//	)
//	if errors.Is(err, services.ErrInvalidQuantity) {
//	    // quantity was zero or negative
//	}
type AllocateOrderCommand struct { //nolint:recvcheck //using for validation
	traderID kernel.UUID
	farmer   order.Farmer
	produce  order.Produce
	quantity float64

	guard guard.ConstructorGuard
}

// NewAllocateOrderCommand validates every field. Missing or malformed fields
// are reported joined under ErrInvalidInput; a non-positive quantity is
// reported as services.ErrInvalidQuantity.
func NewAllocateOrderCommand(
	traderID kernel.UUID,
	farmer order.Farmer,
	produce order.Produce,
	quantity float64,
) (AllocateOrderCommand, error) {
	cmd := AllocateOrderCommand{guard: guard.NewConstructorGuard()}

	var errList []error
	if err := errors.Join(
		cmd.setTraderID(traderID),
		cmd.setFarmer(farmer),
		cmd.setProduce(produce),
	); err != nil {
		errList = append(errList, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
	if err := cmd.setQuantity(quantity); err != nil {
		errList = append(errList, err)
	}

	if err := errors.Join(errList...); err != nil {
		return AllocateOrderCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}

func (c AllocateOrderCommand) TraderID() kernel.UUID {
	return c.traderID
}

func (c AllocateOrderCommand) Farmer() order.Farmer {
	return c.farmer
}

func (c AllocateOrderCommand) Produce() order.Produce {
	return c.produce
}

func (c AllocateOrderCommand) Quantity() float64 {
	return c.quantity
}

func (c *AllocateOrderCommand) setTraderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("trader id", err)
	}
	c.traderID = id
	return nil
}

func (c *AllocateOrderCommand) setFarmer(f order.Farmer) error {
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
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("farmer location", err))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.farmer = f
	return nil
}

func (c *AllocateOrderCommand) setProduce(p order.Produce) error {
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

	c.produce = p
	return nil
}

func (c *AllocateOrderCommand) setQuantity(quantity float64) error {
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return fmt.Errorf("%w: got %v", services.ErrInvalidQuantity, quantity)
	}
	c.quantity = quantity
	return nil
}
