package floor

import "gonum.org/v1/gonum/stat"

// PositionBaseline summarizes how a stat behaves across every qualifying
// player at one position: the grand mean, the variance of per-player
// means (between), and the average of per-player sample variances
// (within). It is the prior that individual players are shrunk toward.
type PositionBaseline struct {
	Mean            float64
	BetweenVariance float64
	WithinVariance  float64
	Players         int
	Games           int
}

// ComputePositionBaseline builds the baseline from one value slice per
// player. The position mean is game-weighted (high-volume players count
// for every game they played, not once). Players with no games are
// skipped; players with a single game contribute their mean but a zero
// within-variance term.
func ComputePositionBaseline(playerGames [][]float64) PositionBaseline {
	var b PositionBaseline
	means := make([]float64, 0, len(playerGames))
	withins := make([]float64, 0, len(playerGames))
	var all []float64
	for _, games := range playerGames {
		if len(games) == 0 {
			continue
		}
		means = append(means, stat.Mean(games, nil))
		withins = append(withins, SampleVariance(games))
		all = append(all, games...)
		b.Games += len(games)
	}
	b.Players = len(means)
	if b.Players == 0 {
		return b
	}
	b.Mean = stat.Mean(all, nil)
	b.WithinVariance = stat.Mean(withins, nil)
	if b.Players >= 2 {
		b.BetweenVariance = stat.Variance(means, nil)
	}
	return b
}

// ShrinkageResult carries a player's raw and shrunken means plus the
// shrinkage factor actually applied.
type ShrinkageResult struct {
	RawMean        float64
	ShrunkenMean   float64
	Factor         float64
	WithinVariance float64
}

// ApplyShrinkage pulls a player's sample mean toward the position
// baseline using the empirical-Bayes factor
//
//	s = within / (within + between/n)
//
// where within is the player's own game-to-game sample variance, so
// noisy players shrink harder while consistent players keep their own
// signal. A zero within-variance series carries no noise to discount:
// the raw mean is returned with a factor of 0.
func ApplyShrinkage(values []float64, baseline PositionBaseline) ShrinkageResult {
	res := ShrinkageResult{
		RawMean:        Mean(values),
		WithinVariance: SampleVariance(values),
	}
	res.ShrunkenMean = res.RawMean
	n := float64(len(values))
	if n == 0 || res.WithinVariance == 0 {
		return res
	}
	s := res.WithinVariance / (res.WithinVariance + baseline.BetweenVariance/n)
	res.Factor = s
	res.ShrunkenMean = s*baseline.Mean + (1-s)*res.RawMean
	return res
}
