package floor

import "math"

// Confidence labels graded from sample size and relative interval width.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// ConfidenceLabel grades an interval. HIGH needs at least eight games
// and a band no wider than 30% of the expected value; MEDIUM needs five
// games and 50%; everything else is LOW.
func ConfidenceLabel(iv Interval) string {
	rel := iv.RelativeWidth()
	switch {
	case iv.SampleSize >= 8 && rel <= 0.3:
		return ConfidenceHigh
	case iv.SampleSize >= 5 && rel <= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ConfidenceScore is the scalar confidence retained for projection
// records: 40% sample-size saturation (full credit at ten games) plus
// 60% consistency (one minus the coefficient of variation, floored at
// zero).
func ConfidenceScore(sampleSize int, cv float64) float64 {
	sizeTerm := math.Min(float64(sampleSize)/10, 1)
	consistency := math.Max(0, 1-cv)
	return 0.4*sizeTerm + 0.6*consistency
}
