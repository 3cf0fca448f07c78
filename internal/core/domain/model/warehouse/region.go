package warehouse

import (
	"strings"

	"agrilogistics/internal/pkg/errs"
)

// Region tags a warehouse with the traffic zone it sits in.
//
// The known regions are North, South, East and West. Any other non-empty value
// is preserved as-is so stored data round-trips, and such regions fall back to
// the default traffic multiplier during allocation.
type Region string

const (
	North Region = "North"
	South Region = "South"
	East  Region = "East"
	West  Region = "West"
)

// KnownRegions lists the regions with a dedicated traffic multiplier, in display order.
func KnownRegions() []Region {
	return []Region{North, South, East, West}
}

// ParseRegion canonicalises a region name. Known regions match case-insensitively
// ("NORTH", "north" -> North); other names are trimmed and returned unchanged.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("region")
	}

	for _, r := range KnownRegions() {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return Region(s), nil
}

// IsKnown reports whether r is one of KnownRegions.
func (r Region) IsKnown() bool {
	for _, known := range KnownRegions() {
		if r == known {
			return true
		}
	}
	return false
}

func (r Region) String() string {
	return string(r)
}
