package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"floorcast/domain/floor"
	"floorcast/internal/cache"
	"floorcast/internal/config"
	"floorcast/internal/errors"
	"floorcast/ports"
)

// recentWindows is the trailing-game count feeding the recency-weighted
// computations, tuned per position to typical usage volatility.
var recentWindows = map[floor.Position]int{
	floor.QB: 4,
	floor.RB: 4,
	floor.WR: 5,
	floor.TE: 4,
}

// defenseCategory maps a projected stat to the defensive aggregate that
// measures the matchup for it. Fantasy points follow the position's
// primary production channel.
func defenseCategory(stat string, pos floor.Position) string {
	switch stat {
	case floor.StatPassingYards:
		return "passing"
	case floor.StatRushingYards:
		return "rushing"
	case floor.StatReceivingYards:
		return "receiving"
	case floor.StatFantasyPoints:
		switch pos {
		case floor.QB:
			return "passing"
		case floor.RB:
			return "rushing"
		default:
			return "receiving"
		}
	}
	return ""
}

// PlayerProjection is one finished evaluation: the prediction band plus
// the inputs that shaped it, kept for reporting.
type PlayerProjection struct {
	Player   ports.Player       `json:"player"`
	Category floor.StatCategory `json:"category"`
	Interval floor.Interval     `json:"interval"`

	PointEstimate float64           `json:"point_estimate"`
	TrendFactor   float64           `json:"trend_factor"`
	Modifiers     floor.ModifierSet `json:"modifiers"`
	Environment   string            `json:"environment"`

	InjuryStatus  floor.InjuryStatus `json:"injury_status"`
	Participation float64            `json:"participation"`

	ConfidenceLabel string  `json:"confidence_label"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Exclusion records a rostered player the run skipped and why.
type Exclusion struct {
	Player ports.Player `json:"player"`
	Reason string       `json:"reason"`
}

// TeamResult is one side of a game: projected players and exclusions.
type TeamResult struct {
	TeamID      string             `json:"team_id"`
	Projections []PlayerProjection `json:"projections"`
	Excluded    []Exclusion        `json:"excluded"`
}

// GameResult is a full evaluation of one game.
type GameResult struct {
	Game  ports.Game   `json:"game"`
	Teams []TeamResult `json:"teams"`
}

// FloorService runs the projection pipeline: per game, per team, per
// player, per stat category.
type FloorService struct {
	games       ports.GameStore
	stats       ports.StatStore
	projections ports.ProjectionStore
	opponents   *OpponentFactors
	gatherer    *ContextGatherer
	cfg         *config.Config
	log         *zap.SugaredLogger

	baselines *cache.Cache[floor.PositionBaseline]
}

func NewFloorService(
	games ports.GameStore,
	stats ports.StatStore,
	projections ports.ProjectionStore,
	opponents *OpponentFactors,
	gatherer *ContextGatherer,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *FloorService {
	return &FloorService{
		games:       games,
		stats:       stats,
		projections: projections,
		opponents:   opponents,
		gatherer:    gatherer,
		cfg:         cfg,
		log:         log,
		baselines:   cache.New[floor.PositionBaseline](),
	}
}

// EvaluateWeek projects every scheduled game in a week. Games that fail
// validation are logged and skipped; the week run continues.
func (s *FloorService) EvaluateWeek(ctx context.Context, season, week int) ([]GameResult, error) {
	games, err := s.games.GamesByWeek(ctx, season, week)
	if err != nil {
		return nil, errors.Wrapf(err, "listing games for season %d week %d", season, week)
	}
	if len(games) == 0 {
		return nil, errors.MissingData(fmt.Sprintf("games for season %d week %d", season, week))
	}

	results := make([]GameResult, 0, len(games))
	for i := range games {
		result, err := s.EvaluateGame(ctx, games[i].ID, season)
		if err != nil {
			s.log.Warnw("game evaluation skipped", "game", games[i].ID, "error", err)
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

// EvaluateGame projects both rosters of one game.
func (s *FloorService) EvaluateGame(ctx context.Context, gameID string, season int) (*GameResult, error) {
	game, err := s.games.GameByID(ctx, gameID, season)
	if err != nil {
		return nil, errors.Wrapf(err, "loading game %s", gameID)
	}
	if game == nil {
		return nil, errors.NotFound(fmt.Sprintf("game %s not found for season %d", gameID, season))
	}
	if game.HomeTeamID == "" || game.AwayTeamID == "" {
		return nil, errors.ValidationError(fmt.Sprintf("game %s is missing a team assignment", gameID))
	}

	gctx := s.gatherer.GatherGame(ctx, game)

	result := &GameResult{Game: *game}
	for _, teamID := range []string{game.HomeTeamID, game.AwayTeamID} {
		team, err := s.evaluateTeam(ctx, game, teamID, gctx)
		if err != nil {
			return nil, err
		}
		result.Teams = append(result.Teams, *team)
	}
	return result, nil
}

func (s *FloorService) evaluateTeam(ctx context.Context, game *ports.Game, teamID string, gctx GameContext) (*TeamResult, error) {
	players, err := s.stats.SkillPlayersByTeam(ctx, teamID, game.Season)
	if err != nil {
		return nil, errors.Wrapf(err, "loading roster for team %s", teamID)
	}

	team := &TeamResult{TeamID: teamID}
	var mu sync.Mutex

	g, gtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers.MaxConcurrent)
	for i := range players {
		player := players[i]
		g.Go(func() error {
			projections, excluded, err := s.evaluatePlayer(gtx, game, teamID, player, gctx)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			team.Projections = append(team.Projections, projections...)
			if excluded != nil {
				team.Excluded = append(team.Excluded, *excluded)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Infow("team evaluated",
		"game", game.ID, "team", teamID,
		"projections", len(team.Projections), "excluded", len(team.Excluded))
	return team, nil
}

func (s *FloorService) evaluatePlayer(ctx context.Context, game *ports.Game, teamID string, player ports.Player, gctx GameContext) ([]PlayerProjection, *Exclusion, error) {
	pos := floor.Position(player.Position)
	if !floor.IsSkillPosition(pos) {
		return nil, nil, nil
	}

	status, participation := s.gatherer.Participation(ctx, player.ID, game.Season, game.Week)
	if status == floor.StatusOut {
		return nil, &Exclusion{Player: player, Reason: "ruled out on the injury report"}, nil
	}

	rows, err := s.stats.PlayerGameStats(ctx, player.ID, game.Season, game.Week)
	if err != nil {
		// Retries are exhausted by the store layer; skip just this
		// player rather than aborting the game.
		s.log.Warnw("stat history unavailable, player skipped",
			"player", player.ID, "error", err)
		return nil, &Exclusion{Player: player, Reason: "stat history unavailable"}, nil
	}
	if len(rows) < s.cfg.Engine.MinGamesPlayed {
		return nil, &Exclusion{
			Player: player,
			Reason: fmt.Sprintf("only %d completed games, need %d", len(rows), s.cfg.Engine.MinGamesPlayed),
		}, nil
	}

	opponentID, _ := game.Opponent(teamID)
	envInput := gctx.Env[teamID]

	var out []PlayerProjection
	for _, cat := range floor.Categories(pos) {
		proj, ok := s.evaluateCategory(ctx, game, teamID, opponentID, player, pos, cat, rows, envInput, gctx, status, participation)
		if !ok {
			continue
		}
		out = append(out, proj)
		if err := s.persist(ctx, game, player, proj); err != nil {
			s.log.Warnw("projection write failed",
				"player", player.ID, "stat", cat.Stat, "error", err)
		}
	}
	if len(out) == 0 {
		// Enough games played, but every category came up empty (the
		// relevant stat columns were all null).
		return nil, &Exclusion{Player: player, Reason: "no qualifying stats"}, nil
	}
	return out, nil, nil
}

func (s *FloorService) evaluateCategory(
	ctx context.Context,
	game *ports.Game,
	teamID, opponentID string,
	player ports.Player,
	pos floor.Position,
	cat floor.StatCategory,
	rows []ports.PlayerGameStat,
	envInput floor.EnvironmentInput,
	gctx GameContext,
	status floor.InjuryStatus,
	participation float64,
) (PlayerProjection, bool) {
	series := buildSeries(rows, cat.Stat, recentWindows[pos])
	if len(series.Season) < s.cfg.Engine.MinGamesPlayed {
		s.log.Debugw("stat category skipped for thin history",
			"player", player.ID, "stat", cat.Stat, "games", len(series.Season))
		return PlayerProjection{}, false
	}

	winsorized := floor.Winsorize(series.SeasonValues())
	mean := floor.Mean(winsorized)
	stdDev := floor.StdDev(winsorized)
	mean, stdDev, shift := floor.RegimeAdjustedBaseline(winsorized, mean, stdDev)
	if shift.Detected {
		s.log.Debugw("regime shift detected",
			"player", player.ID, "stat", cat.Stat, "changepoint", shift.Changepoint)
	}
	cv := floor.CoefficientOfVariation(winsorized)

	trend := floor.TrendMomentum(series.Recent, stdDev, game.Week)
	trend = clampFloat(trend, 1-s.cfg.Engine.TrendMaxAdjust, 1+s.cfg.Engine.TrendMaxAdjust)

	script := floor.GameScriptModifier(pos, teamID, gctx.Betting)

	estimate := s.pointEstimate(rows, cat, mean, series, pos)
	estimate = s.shrinkEstimate(ctx, game, pos, cat.Stat, winsorized, estimate)

	env := floor.EnvironmentModifier(envInput, s.gatherer.ModifierSource())

	condition := floor.ClassifyCondition(envInput.Venue, envInput.Weather)
	history := s.gatherer.ConditionHistory(ctx, series.Season)
	playerFactor := floor.PlayerConditionFactor(history, condition)

	opponent := s.opponents.Factor(ctx, opponentID, defenseCategory(cat.Stat, pos), game.Season, game.Week)

	modifiers := floor.ModifierSet{
		Opponent:   opponent,
		Venue:      env.Venue,
		Weather:    env.Weather,
		Home:       env.Home,
		Player:     playerFactor,
		GameScript: script.Modifier,
	}
	combined := modifiers.Combined() * trend * participation

	interval := floor.PredictionInterval(winsorized, combined, floor.IntervalOptions{
		Samples:      s.cfg.Bootstrap.Samples,
		Confidence:   s.cfg.Bootstrap.Confidence,
		PlayerCV:     cv,
		DisableBlock: !s.cfg.Bootstrap.UseBlock,
		Rand:         s.rng(),
	})

	return PlayerProjection{
		Player:          player,
		Category:        cat,
		Interval:        interval,
		PointEstimate:   floor.Round1(estimate * combined),
		TrendFactor:     floor.Round2(trend),
		Modifiers:       modifiers,
		Environment:     env.Details,
		InjuryStatus:    status,
		Participation:   participation,
		ConfidenceLabel: floor.ConfidenceLabel(interval),
		ConfidenceScore: floor.ConfidenceScore(len(winsorized), cv),
	}, true
}

// pointEstimate prefers the opportunity-times-efficiency projection for
// volume-driven stats, falling back to the EWMA temporal blend when the
// opportunity metric is absent or efficiency is undefined. Opportunities
// are projected at neutral volume here; the game-script modifier reaches
// the estimate exactly once, through the combined modifier.
func (s *FloorService) pointEstimate(rows []ports.PlayerGameStat, cat floor.StatCategory, seasonMean float64, series floor.Series, pos floor.Position) float64 {
	recentValues := floor.Winsorize(series.RecentValues())

	if cat.Opportunity != "" {
		opp := buildSeries(rows, cat.Opportunity, recentWindows[pos])
		if est, ok := floor.OpportunityEfficiency(
			opp.SeasonValues(), opp.RecentValues(), series.SeasonValues(), 1); ok {
			return est
		}
	}
	return floor.TemporalProjection(seasonMean, recentValues, pos)
}

// shrinkEstimate pulls the point estimate toward the position baseline
// in proportion to the shrinkage the player's own mean received. Absent
// a computable baseline (store failure, or fewer than two qualifying
// players at the position) the estimate passes through unchanged.
func (s *FloorService) shrinkEstimate(ctx context.Context, game *ports.Game, pos floor.Position, stat string, winsorized []float64, estimate float64) float64 {
	baseline, err := s.positionBaseline(ctx, pos, stat, game.Season, game.Week)
	if err != nil {
		s.log.Warnw("position baseline unavailable, skipping shrinkage",
			"position", pos, "stat", stat, "error", err)
		return estimate
	}
	if baseline.Players < 2 {
		return estimate
	}
	res := floor.ApplyShrinkage(winsorized, baseline)
	if res.RawMean <= 0 {
		return estimate
	}
	return estimate * res.ShrunkenMean / res.RawMean
}

func (s *FloorService) positionBaseline(ctx context.Context, pos floor.Position, stat string, season, beforeWeek int) (floor.PositionBaseline, error) {
	key := fmt.Sprintf("%s-%s-%d-%d", pos, stat, season, beforeWeek)
	return s.baselines.GetOrCompute(key, func() (floor.PositionBaseline, error) {
		rows, err := s.stats.PositionGameStats(ctx, string(pos), season, beforeWeek)
		if err != nil {
			return floor.PositionBaseline{}, err
		}
		byPlayer := make(map[string][]float64)
		for i := range rows {
			if v, ok := rows[i].Stat(stat); ok {
				byPlayer[rows[i].PlayerID] = append(byPlayer[rows[i].PlayerID], v)
			}
		}
		playerGames := make([][]float64, 0, len(byPlayer))
		for _, games := range byPlayer {
			playerGames = append(playerGames, games)
		}
		return floor.ComputePositionBaseline(playerGames), nil
	})
}

func (s *FloorService) persist(ctx context.Context, game *ports.Game, player ports.Player, proj PlayerProjection) error {
	return s.projections.UpsertProjection(ctx, ports.Projection{
		PlayerID:           player.ID,
		GameID:             game.ID,
		Season:             game.Season,
		Week:               game.Week,
		Stat:               proj.Category.Stat,
		Floor:              proj.Interval.Floor,
		Expected:           proj.Interval.Expected,
		Ceiling:            proj.Interval.Ceiling,
		Confidence:         proj.Interval.Confidence,
		OpponentFactor:     proj.Modifiers.Opponent,
		EnvironmentDetails: proj.Environment,
		ConfidenceLabel:    proj.ConfidenceLabel,
		ConfidenceScore:    proj.ConfidenceScore,
		InjuryFactor:       proj.Participation,
		SampleSize:         proj.Interval.SampleSize,
	})
}

// rng returns a fresh seeded source per evaluation when a seed is
// configured, so concurrent evaluations stay reproducible without
// sharing rand state across goroutines. Zero seed means time-seeded
// inside the bootstrap itself.
func (s *FloorService) rng() *rand.Rand {
	if s.cfg.Bootstrap.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(s.cfg.Bootstrap.Seed))
}

// buildSeries collects a player's chronological observations for one
// stat, with the trailing window as the recent slice. Rows where the
// stat is null are skipped rather than zeroed.
func buildSeries(rows []ports.PlayerGameStat, stat string, window int) floor.Series {
	var season []floor.Observation
	for i := range rows {
		v, ok := rows[i].Stat(stat)
		if !ok {
			continue
		}
		season = append(season, floor.Observation{
			GameID: rows[i].GameID,
			Week:   rows[i].Week,
			Value:  v,
		})
	}
	if window <= 0 {
		window = 3
	}
	recent := season
	if len(season) > window {
		recent = season[len(season)-window:]
	}
	return floor.Series{Season: season, Recent: recent}
}
