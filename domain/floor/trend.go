package floor

import "math"

const (
	trendMinGames      = 3
	trendSensitivity   = 0.5
	trendMaxAdjustment = 0.30

	// Exponential time decay on trend slopes, ln(2)/10 for a 10-day
	// half-life. Weeks approximate days at 7 per week, which handles
	// bye-week gaps without needing exact game dates.
	trendDecayRate = 0.0693

	cusumAllowance = 0.5
	cusumThreshold = 4.0
	regimeMinGames = 5
	regimeBlend    = 0.8
)

// TrendMomentum measures recent directional movement as a multiplicative
// factor around 1.0. Game-over-game slopes are weighted by exponential
// recency decay, averaged, normalized by the season standard deviation
// into an effect size, then scaled by the sensitivity and capped at
// +/-30%. Fewer than three recent games, or a flat season, is neutral.
//
// recent must be ordered chronologically; currentWeek anchors the decay.
func TrendMomentum(recent []Observation, seasonStdDev float64, currentWeek int) float64 {
	if len(recent) < trendMinGames || seasonStdDev <= 0 {
		return 1.0
	}

	// Most recent first so a positive slope means improvement.
	ordered := make([]Observation, len(recent))
	for i, o := range recent {
		ordered[len(recent)-1-i] = o
	}

	var sumWeighted, sumWeights float64
	for i := 0; i < len(ordered)-1; i++ {
		daysAgo := 7 * float64(currentWeek-ordered[i].Week)
		if daysAgo < 0 {
			daysAgo = 0
		}
		weight := math.Exp(-trendDecayRate * daysAgo)
		slope := ordered[i].Value - ordered[i+1].Value
		sumWeighted += slope * weight
		sumWeights += weight
	}
	if sumWeights == 0 {
		return 1.0
	}

	effectSize := (sumWeighted / sumWeights) / seasonStdDev
	factor := 1 + effectSize*trendSensitivity
	return clamp(factor, 1-trendMaxAdjustment, 1+trendMaxAdjustment)
}

// RegimeShift reports a CUSUM detection over a chronological series.
type RegimeShift struct {
	Detected    bool
	Changepoint int
}

// DetectRegimeShift runs a one-sided CUSUM control chart for an upward
// structural break (role change, injury return). Deviations from the
// historical mean are standardized, reduced by the allowance k, and
// accumulated with a floor at zero; crossing the threshold h marks the
// changepoint. Needs at least four points and a positive stddev.
func DetectRegimeShift(values []float64, mean, stdDev float64) RegimeShift {
	if len(values) < 4 || stdDev <= 0 {
		return RegimeShift{}
	}
	var sum float64
	for i, v := range values {
		sum = math.Max(0, sum+(v-mean)/stdDev-cusumAllowance)
		if sum > cusumThreshold {
			return RegimeShift{Detected: true, Changepoint: i}
		}
	}
	return RegimeShift{}
}

// RegimeAdjustedBaseline recomputes the season mean and stddev when a
// regime shift is detected, blending 80% post-changepoint with 20% full
// season so stale pre-shift games stop dominating the projection.
// Series shorter than five games, or shifts with fewer than two
// post-changepoint games, return the inputs unchanged.
func RegimeAdjustedBaseline(values []float64, mean, stdDev float64) (float64, float64, RegimeShift) {
	if len(values) < regimeMinGames || stdDev <= 0 {
		return mean, stdDev, RegimeShift{}
	}
	shift := DetectRegimeShift(values, mean, stdDev)
	if !shift.Detected {
		return mean, stdDev, shift
	}
	post := values[shift.Changepoint:]
	if len(post) < 2 {
		return mean, stdDev, shift
	}
	postMean := Mean(post)
	postStdDev := StdDev(post)
	mean = regimeBlend*postMean + (1-regimeBlend)*mean
	stdDev = regimeBlend*postStdDev + (1-regimeBlend)*stdDev
	return mean, stdDev, shift
}
