// Package app orchestrates projection runs: it gathers point-in-time
// data through ports, feeds the pure statistics in domain/floor, and
// writes projection records back. All tolerance for missing context
// lives here; the domain layer only ever sees concrete values.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"floorcast/domain/floor"
	"floorcast/internal/cache"
	"floorcast/internal/config"
	"floorcast/ports"
)

// leagueDefense is one week's league-wide defensive snapshot for a stat
// category, computed once per run and shared by every opponent lookup.
type leagueDefense struct {
	byTeam map[string][]float64
	mean   float64
	teams  int
}

// OpponentFactors turns defensive results into matchup multipliers.
// A factor above 1.0 means the opponent allows more than league average
// in that category (an easier matchup), below 1.0 a tougher one.
type OpponentFactors struct {
	defense ports.DefenseStore
	cfg     config.EngineConfig
	league  *cache.Cache[leagueDefense]
	log     *zap.SugaredLogger
}

func NewOpponentFactors(defense ports.DefenseStore, cfg config.EngineConfig, log *zap.SugaredLogger) *OpponentFactors {
	return &OpponentFactors{
		defense: defense,
		cfg:     cfg,
		league:  cache.New[leagueDefense](),
		log:     log,
	}
}

const (
	// rollingWindowSize bounds the opponent's recent defensive sample so
	// mid-season scheme changes and injuries show up in the factor.
	rollingWindowSize  = 5
	minGamesForRolling = 4
)

// Factor estimates how much easier or harder the opponent's defense is
// than league average for one stat category, shrunk toward the target
// mean in proportion to how much of the observed spread is signal.
// Every missing-data condition degrades to the neutral 1.0; this method
// never fails the caller.
func (o *OpponentFactors) Factor(ctx context.Context, opponentID, category string, season, beforeWeek int) float64 {
	key := fmt.Sprintf("%d-%d-%s", season, beforeWeek, category)
	league, err := o.league.GetOrCompute(key, func() (leagueDefense, error) {
		return o.loadLeague(ctx, category, season, beforeWeek)
	})
	if err != nil {
		o.log.Warnw("league defense unavailable, neutral opponent factor",
			"category", category, "season", season, "before_week", beforeWeek, "error", err)
		return 1.0
	}

	values := o.teamWindow(ctx, opponentID, category, season, beforeWeek, league)
	if len(values) == 0 || league.mean <= 0 {
		return 1.0
	}

	raw := floor.Mean(values) / league.mean
	factor := o.shrinkFactor(raw, len(values), league)
	return floor.Round2(clampFloat(factor, o.cfg.OpponentFactorMin, o.cfg.OpponentFactorMax))
}

// teamWindow returns the opponent values the raw ratio averages: the
// last rollingWindowSize games from the team's own chronological log
// once it has minGamesForRolling, otherwise the full-season snapshot
// already held in the league cache.
func (o *OpponentFactors) teamWindow(ctx context.Context, teamID, category string, season, beforeWeek int, league leagueDefense) []float64 {
	rows, err := o.defense.TeamDefenseGames(ctx, teamID, season, beforeWeek)
	if err != nil {
		o.log.Warnw("team defense log unavailable, using season snapshot",
			"team", teamID, "category", category, "error", err)
		return league.byTeam[teamID]
	}

	var values []float64
	for i := range rows {
		if v, ok := rows[i].Allowed(category); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return league.byTeam[teamID]
	}
	if len(values) >= minGamesForRolling && len(values) > rollingWindowSize {
		values = values[len(values)-rollingWindowSize:]
	}
	return values
}

func (o *OpponentFactors) loadLeague(ctx context.Context, category string, season, beforeWeek int) (leagueDefense, error) {
	rows, err := o.defense.LeagueDefenseGames(ctx, season, beforeWeek)
	if err != nil {
		return leagueDefense{}, err
	}

	byTeam := make(map[string][]float64)
	var all []float64
	for i := range rows {
		v, ok := rows[i].Allowed(category)
		if !ok {
			continue
		}
		byTeam[rows[i].TeamID] = append(byTeam[rows[i].TeamID], v)
		all = append(all, v)
	}

	return leagueDefense{
		byTeam: byTeam,
		mean:   floor.Mean(all),
		teams:  len(byTeam),
	}, nil
}

// shrinkFactor pulls the raw matchup ratio toward the target mean.
// With empirical Bayes enabled and at least two teams observed, the
// shrinkage weight is between/(between + within/n): the more of the
// league's spread that is real team-to-team difference rather than
// game-to-game noise, the more of the raw ratio survives. Otherwise a
// heuristic blend weighted by sample size against the minimum-sample
// threshold applies.
func (o *OpponentFactors) shrinkFactor(raw float64, n int, league leagueDefense) float64 {
	if o.cfg.UseEmpiricalBayes && league.teams >= 2 {
		between, within, ok := varianceComponents(league.byTeam)
		if ok {
			denom := between + within/float64(n)
			if denom > 0 {
				s := between / denom
				return o.cfg.OpponentTarget + s*(raw-o.cfg.OpponentTarget)
			}
		}
	}

	weight := float64(n) / float64(o.cfg.OpponentMinSample)
	if weight > 1 {
		weight = 1
	}
	return o.cfg.OpponentTarget + weight*(raw-o.cfg.OpponentTarget)
}

// varianceComponents decomposes the league's allowed-stat spread into
// between-team variance (of per-team means) and pooled within-team
// variance. Reports false when no team has enough games to contribute a
// within-team estimate.
func varianceComponents(byTeam map[string][]float64) (between, within float64, ok bool) {
	var means []float64
	var pooledSS, pooledDF float64
	for _, games := range byTeam {
		if len(games) == 0 {
			continue
		}
		means = append(means, stat.Mean(games, nil))
		if len(games) >= 2 {
			pooledSS += stat.Variance(games, nil) * float64(len(games)-1)
			pooledDF += float64(len(games) - 1)
		}
	}
	if len(means) < 2 || pooledDF == 0 {
		return 0, 0, false
	}
	return stat.Variance(means, nil), pooledSS / pooledDF, true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
