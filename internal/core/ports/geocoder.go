package ports

import (
	"context"

	"agrilogistics/internal/core/domain/model/kernel"
)

// GeocodeResult is the best match for a free-text address.
type GeocodeResult struct {
	Location    kernel.Location
	DisplayName string
}

// Geocoder resolves addresses to coordinates.
type Geocoder interface {
	// Geocode returns the first match for address.
	// Returns errs.ErrObjectNotFound when nothing matches and
	// ErrUpstreamUnavailable when the provider cannot be reached.
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}
