package floor

import "math"

const (
	defaultAlpha = 0.30
	minAlpha     = 0.15
	maxAlpha     = 0.65

	// Blend weights for the temporal projection. Recent form dominates
	// but the season mean anchors against small-window noise.
	seasonWeight = 0.4
	recentWeight = 0.6
)

var positionAlphas = map[Position]float64{
	QB: 0.25,
	RB: 0.35,
	WR: 0.40,
	TE: 0.30,
}

// PositionAlpha returns the EWMA smoothing constant for a position.
// Volatile usage positions (WR, RB) weight recent games harder than
// stable ones (QB).
func PositionAlpha(pos Position) float64 {
	if a, ok := positionAlphas[pos]; ok {
		return a
	}
	return defaultAlpha
}

// EWMA computes an exponentially weighted moving average over a
// chronological series, seeding with the first value. Returns 0 for an
// empty series.
func EWMA(values []float64, alpha float64) float64 {
	if len(values) == 0 {
		return 0
	}
	ewma := values[0]
	for _, v := range values[1:] {
		ewma = alpha*v + (1-alpha)*ewma
	}
	return ewma
}

// AdaptiveAlpha adjusts the base alpha for the player's volatility and
// sample size: a high coefficient of variation lowers alpha (boom/bust
// players get more smoothing, the CV term bottoms out at 0.5), while
// more games raise it (1 + ln(n)/10). The result is clamped to
// [0.15, 0.65].
func AdaptiveAlpha(values []float64, base float64) float64 {
	if len(values) < 2 {
		return base
	}
	cv := CoefficientOfVariation(values)
	cvAdj := math.Max(0.5, 1-cv/2)
	countAdj := 1 + math.Log(float64(len(values)))/10
	return clamp(base*cvAdj*countAdj, minAlpha, maxAlpha)
}

// AdaptiveEWMA runs EWMA with the volatility-adjusted alpha. Fewer than
// three games is too short to estimate volatility; the most recent
// value stands in, matching the plain-EWMA tendency toward the tail of
// a short series.
func AdaptiveEWMA(values []float64, base float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) < 3 {
		return values[len(values)-1]
	}
	return EWMA(values, AdaptiveAlpha(values, base))
}

// Trend classifications produced by EWMATrend.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// TrendInfo describes the direction of a player's smoothed series.
type TrendInfo struct {
	Trend        string
	Slope        float64
	SlopePercent float64
	Direction    int
}

// EWMATrend fits the per-game change of the running EWMA and classifies
// the series as improving or declining when the normalized slope moves
// more than 5% of the average level per game. Fewer than three games is
// always stable.
func EWMATrend(values []float64, alpha float64) TrendInfo {
	if len(values) < 3 {
		return TrendInfo{Trend: TrendStable}
	}
	series := make([]float64, len(values))
	ewma := values[0]
	series[0] = ewma
	for i, v := range values[1:] {
		ewma = alpha*v + (1-alpha)*ewma
		series[i+1] = ewma
	}
	n := len(series)
	slope := (series[n-1] - series[0]) / float64(n-1)
	avg := Mean(series)
	info := TrendInfo{Trend: TrendStable, Slope: slope}
	if avg > 0 {
		info.SlopePercent = slope / avg
	}
	switch {
	case info.SlopePercent > 0.05:
		info.Trend = TrendImproving
		info.Direction = 1
	case info.SlopePercent < -0.05:
		info.Trend = TrendDeclining
		info.Direction = -1
	}
	return info
}

// TemporalProjection blends the season-long mean with the adaptive EWMA
// of the recent window, 40/60. With no recent games the season mean
// stands alone.
func TemporalProjection(seasonMean float64, recent []float64, pos Position) float64 {
	if len(recent) == 0 {
		return seasonMean
	}
	ewma := AdaptiveEWMA(recent, PositionAlpha(pos))
	return seasonWeight*seasonMean + recentWeight*ewma
}
