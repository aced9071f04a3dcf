package app

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"floorcast/domain/floor"
	"floorcast/ports"
)

// GameContext is everything known about one game's surroundings before
// kickoff. Any nil or zero field means the data simply was not there.
type GameContext struct {
	Env     map[string]floor.EnvironmentInput // keyed by team id
	Betting floor.BettingContext
}

// ContextGatherer resolves venue, weather, betting, and injury context
// from the store and converts it into the plain inputs the domain layer
// consumes. Lookups that fail or come back empty degrade to neutral
// inputs with a logged warning; context never blocks a projection.
type ContextGatherer struct {
	store  ports.ContextStore
	source floor.ModifierSource
	log    *zap.SugaredLogger
}

func NewContextGatherer(store ports.ContextStore, weightsPath string, log *zap.SugaredLogger) *ContextGatherer {
	return &ContextGatherer{
		store:  store,
		source: loadModifierSource(weightsPath, log),
		log:    log,
	}
}

// ModifierSource exposes the learned-or-default factor chain for the
// environment modifier.
func (g *ContextGatherer) ModifierSource() floor.ModifierSource {
	return g.source
}

// loadModifierSource builds the factor chain: trained feature
// importances from a JSON file when configured, static defaults behind
// them for anything the training did not cover.
func loadModifierSource(path string, log *zap.SugaredLogger) floor.ModifierSource {
	defaults := floor.DefaultModifiers()
	if path == "" {
		return defaults
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnw("learned weights file unreadable, using static defaults", "path", path, "error", err)
		return defaults
	}
	var importances map[string]float64
	if err := json.Unmarshal(data, &importances); err != nil {
		log.Warnw("learned weights file malformed, using static defaults", "path", path, "error", err)
		return defaults
	}
	log.Infow("loaded learned environment weights", "path", path, "features", len(importances))
	return floor.ChainSource{floor.LearnedWeights{Importances: importances}, defaults}
}

// GatherGame assembles the per-team environment inputs and the betting
// context for one upcoming game.
func (g *ContextGatherer) GatherGame(ctx context.Context, game *ports.Game) GameContext {
	venue := g.venue(ctx, game)
	weather := g.weather(ctx, game.ID)

	env := make(map[string]floor.EnvironmentInput, 2)
	for _, teamID := range []string{game.HomeTeamID, game.AwayTeamID} {
		env[teamID] = floor.EnvironmentInput{
			IsHome:    teamID == game.HomeTeamID,
			HomeKnown: true,
			Venue:     venue,
			Weather:   weather,
		}
	}

	return GameContext{
		Env:     env,
		Betting: g.betting(ctx, game),
	}
}

func (g *ContextGatherer) venue(ctx context.Context, game *ports.Game) *floor.Venue {
	if !game.StadiumID.Valid {
		return nil
	}
	stadium, err := g.store.StadiumByID(ctx, game.StadiumID.String)
	if err != nil {
		g.log.Warnw("stadium lookup failed", "game", game.ID, "stadium", game.StadiumID.String, "error", err)
		return nil
	}
	if stadium == nil {
		return nil
	}
	return &floor.Venue{Name: stadium.Name, Surface: stadium.Surface, Roof: stadium.Roof}
}

func (g *ContextGatherer) weather(ctx context.Context, gameID string) *floor.Weather {
	row, err := g.store.WeatherByGame(ctx, gameID)
	if err != nil {
		g.log.Warnw("weather lookup failed", "game", gameID, "error", err)
		return nil
	}
	if row == nil {
		return nil
	}
	w := &floor.Weather{}
	if row.Temperature.Valid {
		t := row.Temperature.Float64
		w.Temperature = &t
	}
	if row.WindSpeed.Valid {
		s := row.WindSpeed.Float64
		w.WindSpeed = &s
	}
	if row.Conditions.Valid {
		w.Conditions = row.Conditions.String
	}
	return w
}

func (g *ContextGatherer) betting(ctx context.Context, game *ports.Game) floor.BettingContext {
	line, err := g.store.BettingLineByGame(ctx, game.ID, game.Season)
	if err != nil {
		g.log.Warnw("betting line lookup failed", "game", game.ID, "error", err)
		return floor.BettingContext{}
	}
	if line == nil || !line.Spread.Valid || !line.Total.Valid || !line.FavoriteTeamID.Valid {
		return floor.BettingContext{}
	}
	spread := line.Spread.Float64
	if spread < 0 {
		spread = -spread
	}
	return floor.BettingContext{
		Spread:       spread,
		Total:        line.Total.Float64,
		FavoriteTeam: line.FavoriteTeamID.String,
		HasData:      true,
	}
}

// Participation returns a player's injury designation and the workload
// share it implies. No report means active at full participation.
func (g *ContextGatherer) Participation(ctx context.Context, playerID string, season, week int) (floor.InjuryStatus, float64) {
	report, err := g.store.InjuryStatus(ctx, playerID, season, week)
	if err != nil {
		g.log.Warnw("injury lookup failed, assuming active", "player", playerID, "week", week, "error", err)
		return floor.StatusActive, 1.0
	}
	if report == nil {
		return floor.StatusActive, 1.0
	}
	status := floor.ParseInjuryStatus(report.Status)
	return status, floor.ParticipationProbability(status)
}

// ConditionHistory tags each historical observation with the
// environmental condition its game was played under, for the
// player-specific condition sub-factor. Games without stored venue or
// weather classify as unknown and drop out of the matching.
func (g *ContextGatherer) ConditionHistory(ctx context.Context, obs []floor.Observation) []floor.ConditionObservation {
	if len(obs) == 0 {
		return nil
	}
	gameIDs := make([]string, len(obs))
	for i, o := range obs {
		gameIDs[i] = o.GameID
	}
	envs, err := g.store.GameEnvironments(ctx, gameIDs)
	if err != nil {
		g.log.Warnw("game environment batch lookup failed", "games", len(gameIDs), "error", err)
		return nil
	}

	history := make([]floor.ConditionObservation, 0, len(obs))
	for _, o := range obs {
		row, ok := envs[o.GameID]
		if !ok {
			history = append(history, floor.ConditionObservation{Condition: floor.CondUnknown, Value: o.Value})
			continue
		}
		history = append(history, floor.ConditionObservation{
			Condition: floor.ClassifyCondition(envVenue(row), envWeather(row)),
			Value:     o.Value,
		})
	}
	return history
}

func envVenue(row ports.GameEnvironment) *floor.Venue {
	if !row.Surface.Valid && !row.Roof.Valid {
		return nil
	}
	return &floor.Venue{Surface: row.Surface.String, Roof: row.Roof.String}
}

func envWeather(row ports.GameEnvironment) *floor.Weather {
	if !row.Temperature.Valid && !row.WindSpeed.Valid && !row.Conditions.Valid {
		return nil
	}
	w := &floor.Weather{}
	if row.Temperature.Valid {
		t := row.Temperature.Float64
		w.Temperature = &t
	}
	if row.WindSpeed.Valid {
		s := row.WindSpeed.Float64
		w.WindSpeed = &s
	}
	if row.Conditions.Valid {
		w.Conditions = row.Conditions.String
	}
	return w
}
