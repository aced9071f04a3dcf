package floor

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean, or 0 for an empty sample.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// StdDev returns the population standard deviation, or 0 when fewer
// than two values are present.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return sd
}

// SampleVariance returns the unbiased (n-1) sample variance, or 0 when
// fewer than two values are present.
func SampleVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	v, err := stats.SampleVariance(values)
	if err != nil {
		return 0
	}
	return v
}

// CoefficientOfVariation returns stddev/mean, or 0 when the mean is
// not positive.
func CoefficientOfVariation(values []float64) float64 {
	m := Mean(values)
	if m <= 0 {
		return 0
	}
	return StdDev(values) / m
}

// percentile extracts the p-th percentile (p in [0,1]) from values
// using linear interpolation between adjacent order statistics. Used
// for interval bounds; Winsorize reads its fences from position-indexed
// quartiles instead, see the note there.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

// percentileSorted is percentile for an already ascending-sorted slice.
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Round1 rounds to one decimal place, the precision used for every
// reported projection value.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to two decimal places, used for modifier factors.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
