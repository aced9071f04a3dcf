package floor

import "sort"

// Winsorize caps extreme values using Tukey fences: anything below
// Q1 - 1.5*IQR is raised to the lower fence and anything above
// Q3 + 1.5*IQR is lowered to the upper fence. Samples with fewer than
// four values pass through untouched since quartile estimation is
// meaningless.
//
// The fence quartiles are position-indexed (sorted[floor(0.25n)] and
// sorted[floor(0.75n)]) rather than interpolated. Capped values sit at
// or inside the fences without disturbing the order statistics the
// fences were read from, so a second application is a no-op. The
// interpolated percentile helper used by the bootstrap would not give
// that guarantee. Capping rather than removing also keeps the sample
// size stable for the variance estimates downstream.
func Winsorize(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(values) < 4 {
		return out
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := sorted[len(sorted)/4]
	q3 := sorted[(len(sorted)*3)/4]
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	for i, v := range out {
		if v < lower {
			out[i] = lower
		} else if v > upper {
			out[i] = upper
		}
	}
	return out
}
