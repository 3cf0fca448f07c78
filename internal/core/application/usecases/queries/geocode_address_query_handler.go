package queries

import (
	"context"

	"agrilogistics/internal/core/ports"
)

type GeocodeAddressQueryHandler struct {
	geocoder ports.Geocoder
}

func NewGeocodeAddressQueryHandler(geocoder ports.Geocoder) GeocodeAddressQueryHandler {
	return GeocodeAddressQueryHandler{geocoder: geocoder}
}

// Handle returns the first match. Not found and transport failures come back
// as errs.ErrObjectNotFound and ports.ErrUpstreamUnavailable.
func (h GeocodeAddressQueryHandler) Handle(ctx context.Context, query GeocodeAddressQuery) (ports.GeocodeResult, error) {
	if err := query.Validate(); err != nil {
		return ports.GeocodeResult{}, err
	}

	result, err := h.geocoder.Geocode(ctx, query.Address())
	if err != nil {
		return ports.GeocodeResult{}, readError("geocode", err)
	}
	return result, nil
}
