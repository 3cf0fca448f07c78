package queries_test

import (
	"errors"
	"fmt"
	"testing"

	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGeocodeAddressQuery(t *testing.T) {
	query, err := queries.NewGeocodeAddressQuery("  Karnal, Haryana ")
	require.NoError(t, err)
	assert.Equal(t, "Karnal, Haryana", query.Address())

	_, err = queries.NewGeocodeAddressQuery("   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero queries.GeocodeAddressQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGeocodeAddressQueryIsNotConstructed)
}

func TestGeocodeAddressQueryHandler_Handle(t *testing.T) {
	geocoder := new(MockGeocoder)
	want := ports.GeocodeResult{Location: location(t, 29.69, 76.99), DisplayName: "Karnal, Haryana, India"}
	geocoder.On("Geocode", mock.Anything, "Karnal").Return(want, nil).Once()

	query, err := queries.NewGeocodeAddressQuery("Karnal")
	require.NoError(t, err)

	got, err := queries.NewGeocodeAddressQueryHandler(geocoder).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	geocoder.AssertExpectations(t)
}

func TestGeocodeAddressQueryHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"not found", errs.NewObjectNotFoundError("address", "Atlantis"), errs.ErrObjectNotFound},
		{"upstream", fmt.Errorf("%w: nominatim: 502", ports.ErrUpstreamUnavailable), ports.ErrUpstreamUnavailable},
		{"unclassified", errors.New("decode response"), ports.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := new(MockGeocoder)
			geocoder.On("Geocode", mock.Anything, "Atlantis").Return(nil, tt.err).Once()
			query, err := queries.NewGeocodeAddressQuery("Atlantis")
			require.NoError(t, err)

			_, err = queries.NewGeocodeAddressQueryHandler(geocoder).Handle(t.Context(), query)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
