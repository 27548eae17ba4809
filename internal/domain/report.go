package domain

// Barometric band labels, as shown on reports.
const (
	BarometricHigh   = "High ( >30.5 )"
	BarometricMedium = "Medium ( 29.7 - 30.4 )"
	BarometricLow    = "Low ( <29.6 )"
)

// Barometric band thresholds in inHg.
const (
	BarometricHighMin   = 30.5
	BarometricMediumMin = 29.7
	BarometricMediumMax = 30.4
)

// BarometricBucket labels a pressure reading in inHg.
func BarometricBucket(inHg float64) string {
	switch {
	case inHg >= BarometricHighMin:
		return BarometricHigh
	case inHg >= BarometricMediumMin && inHg <= BarometricMediumMax:
		return BarometricMedium
	default:
		return BarometricLow
	}
}

// CountRow is one line of a grouped report.
type CountRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Profile is everything shown on an angler's page.
type Profile struct {
	Angler              Angler     `json:"angler"`
	RecentCatches       []Catch    `json:"recent_catches"`
	MasterAnglerCatches []Catch    `json:"master_angler_catches"`
	SpeciesCounts       []CountRow `json:"species_counts"`
	ConditionCounts     []CountRow `json:"weather_counts"`
	WindCounts          []CountRow `json:"wind_counts"`
	BarometricCounts    []CountRow `json:"barometric_counts"`
}

// CatchCountDrift is an angler whose stored catch count disagrees with the
// number of catch rows they own.
type CatchCountDrift struct {
	AnglerID int64  `json:"angler_id"`
	Username string `json:"username"`
	Stored   int    `json:"stored"`
	Actual   int    `json:"actual"`
}
