package kernel

import (
	"fmt"
	"math"

	"agrilogistics/internal/pkg/errs"
	"agrilogistics/internal/pkg/guard"
)

// EarthRadiusKm is the mean radius of the sphere used for great-circle distances.
const EarthRadiusKm = 6371.0

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

// Location is a point in decimal degrees.
//
// Latitudes outside [-90, 90] and longitudes outside [-180, 180] are accepted:
// coordinates come from an external geocoder and are not range-checked
// upstream, and the haversine formula still yields a number for them. Only NaN
// and infinities are refused because they would make every distance NaN.
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude.
//
// Example:
//
//	farm, _ := kernel.NewLocation(28.61, 77.20)
//	hub, _ := kernel.NewLocation(28.70, 77.10)
//	km := farm.DistanceTo(hub) // ~13.9
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}
	if err := loc.setLat(lat); err != nil {
		return Location{}, err
	}
	if err := loc.setLng(lng); err != nil {
		return Location{}, err
	}
	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

func (l Location) IsEqual(other Location) bool {
	return l.lat == other.lat && l.lng == other.lng
}

// DistanceTo returns the great-circle distance in kilometres.
// It is symmetric and exactly 0 for identical coordinates.
func (l Location) DistanceTo(other Location) float64 {
	return HaversineKm(l.lat, l.lng, other.lat, other.lng)
}

// HaversineKm computes the haversine distance between two lat/lng pairs on a
// sphere of EarthRadiusKm. atan2 keeps it stable near identical and antipodal points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(radians(lat1))*math.Cos(radians(lat2))*sinLng*sinLng

	// out-of-range inputs can push a marginally outside [0, 1]
	a = math.Min(math.Max(a, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// RoundKm rounds a distance to two decimal places for storage and display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("lat", fmt.Errorf("%v is not a finite number", lat))
	}
	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return errs.NewValueIsInvalidErrorWithCause("lng", fmt.Errorf("%v is not a finite number", lng))
	}
	l.lng = lng
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
