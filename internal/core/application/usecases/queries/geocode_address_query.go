package queries

import (
	"errors"
	"strings"

	"agrilogistics/internal/pkg/errs"
	"agrilogistics/internal/pkg/guard"
)

var ErrGeocodeAddressQueryIsNotConstructed = errors.New(
	"GeocodeAddressQuery must be created via NewGeocodeAddressQuery constructor",
)

// GeocodeAddressQuery resolves a free-text address to coordinates so the
// trader form can prefill the farmer location.
type GeocodeAddressQuery struct {
	address string

	guard guard.ConstructorGuard
}

func NewGeocodeAddressQuery(address string) (GeocodeAddressQuery, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return GeocodeAddressQuery{}, errs.NewValueIsRequiredError("address")
	}
	return GeocodeAddressQuery{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (q GeocodeAddressQuery) Validate() error {
	return q.guard.Validate(ErrGeocodeAddressQueryIsNotConstructed)
}

func (q GeocodeAddressQuery) Address() string {
	return q.address
}
