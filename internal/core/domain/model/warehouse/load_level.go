package warehouse

// LoadLevel buckets a warehouse's utilisation for the admin dashboard.
type LoadLevel string

const (
	// LoadNormal is 70% utilisation or less.
	LoadNormal LoadLevel = "normal"
	// LoadHigh is above 70% and up to 90%.
	LoadHigh LoadLevel = "high"
	// LoadCritical is above 90%.
	LoadCritical LoadLevel = "critical"
)

const (
	highLoadPercent     = 70.0
	criticalLoadPercent = 90.0
)

// LevelForPercent maps a utilisation percentage to its LoadLevel.
func LevelForPercent(percent float64) LoadLevel {
	switch {
	case percent > criticalLoadPercent:
		return LoadCritical
	case percent > highLoadPercent:
		return LoadHigh
	default:
		return LoadNormal
	}
}
