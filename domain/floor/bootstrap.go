package floor

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

const (
	// DefaultBootstrapSamples is the resample count used when the
	// caller does not override it.
	DefaultBootstrapSamples = 500

	// DefaultConfidence is the nominal two-sided interval level.
	DefaultConfidence = 0.80

	minConfidence = 0.60
	maxConfidence = 0.95

	// blockMinObservations is the smallest series the block bootstrap
	// accepts; shorter series fall back to simple i.i.d. resampling.
	blockMinObservations = 4
)

// IntervalOptions tunes PredictionInterval. The zero value selects the
// defaults (500 samples, 80% confidence, block bootstrap, time-seeded
// RNG).
type IntervalOptions struct {
	Samples    int
	Confidence float64

	// PlayerCV widens the interval for volatile players by shrinking
	// the nominal confidence. Zero disables the adjustment.
	PlayerCV float64

	// DisableBlock forces simple i.i.d. resampling even on series long
	// enough for the block method.
	DisableBlock bool

	// BlockSize overrides the Politis-White automatic block length.
	BlockSize int

	// Rand supplies the resampling RNG so runs can be reproduced from
	// a seed. Nil means a time-seeded source.
	Rand *rand.Rand
}

// Interval is a floor/expected/ceiling prediction band for one stat.
// Values are rounded to one decimal; Confidence is the level actually
// used after volatility scaling.
type Interval struct {
	Floor    float64
	Expected float64
	Ceiling  float64

	// Confidence is the effective level after CV scaling;
	// NominalConfidence is the level the caller asked for.
	Confidence        float64
	NominalConfidence float64

	Modifier   float64
	SampleSize int
	Samples    int
	UsedBlock  bool
	BlockSize  int
}

// Width returns ceiling minus floor.
func (iv Interval) Width() float64 { return Round1(iv.Ceiling - iv.Floor) }

// RelativeWidth returns the interval width relative to the expected
// value, the quantity the confidence labels are graded on. Zero when
// the expected value is not positive.
func (iv Interval) RelativeWidth() float64 {
	if iv.Expected <= 0 {
		return 0
	}
	return (iv.Ceiling - iv.Floor) / iv.Expected
}

// OptimalBlockSize returns the Politis-White block length n^(1/3),
// clamped to [2, n/2].
func OptimalBlockSize(n int) int {
	b := int(math.Floor(math.Cbrt(float64(n))))
	if b < 2 {
		b = 2
	}
	if max := n / 2; b > max {
		b = max
	}
	return b
}

// PredictionInterval builds an empirical prediction band for the mean
// of a chronological series, with the combined context modifier applied
// to the whole bootstrap distribution before percentile extraction so
// floor and ceiling reflect uncertainty after adjustment.
//
// Series of four or more games use the block bootstrap: overlapping
// blocks of consecutive games are resampled so hot/cold streak
// autocorrelation survives into the resamples (simple i.i.d. resampling
// understates variance on dependent series). Shorter series fall back
// to simple resampling. A positive PlayerCV shrinks the nominal
// confidence by clamp(1 - CV/2, 0.6, 1.0), then the result is clamped
// to [0.60, 0.95], so boom/bust players never get intervals narrower
// than their history supports. Empty input yields the zero Interval.
func PredictionInterval(values []float64, modifier float64, opts IntervalOptions) Interval {
	if len(values) == 0 {
		return Interval{Modifier: Round2(modifier)}
	}

	samples := opts.Samples
	if samples <= 0 {
		samples = DefaultBootstrapSamples
	}
	nominal := opts.Confidence
	if nominal <= 0 {
		nominal = DefaultConfidence
	}
	conf := nominal
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	useBlock := !opts.DisableBlock && len(values) >= blockMinObservations
	blockSize := 0
	if useBlock {
		blockSize = opts.BlockSize
		if blockSize <= 0 {
			blockSize = OptimalBlockSize(len(values))
		}
	}

	dist := make([]float64, samples)
	resample := make([]float64, len(values))
	for i := range dist {
		if useBlock {
			resampleBlocks(resample, values, blockSize, rng)
		} else {
			for j := range resample {
				resample[j] = values[rng.Intn(len(values))]
			}
		}
		dist[i] = Mean(resample) * modifier
	}
	sort.Float64s(dist)

	if opts.PlayerCV > 0 {
		scale := clamp(1-opts.PlayerCV*0.5, 0.6, 1.0)
		conf = clamp(conf*scale, minConfidence, maxConfidence)
	}

	lower := (1 - conf) / 2
	return Interval{
		Floor:             Round1(percentileSorted(dist, lower)),
		Expected:          Round1(percentileSorted(dist, 0.5)),
		Ceiling:           Round1(percentileSorted(dist, 1-lower)),
		Confidence:        conf,
		NominalConfidence: nominal,
		Modifier:          Round2(modifier),
		SampleSize:        len(values),
		Samples:           samples,
		UsedBlock:         useBlock,
		BlockSize:         blockSize,
	}
}

// resampleBlocks fills dst by concatenating randomly positioned blocks
// of consecutive source observations. Blocks may start anywhere and
// wrap circularly past the end of the series, truncating the final
// block at the original length.
func resampleBlocks(dst, src []float64, blockSize int, rng *rand.Rand) {
	n := len(src)
	filled := 0
	for filled < n {
		start := rng.Intn(n)
		for j := 0; j < blockSize && filled < n; j++ {
			dst[filled] = src[(start+j)%n]
			filled++
		}
	}
}
