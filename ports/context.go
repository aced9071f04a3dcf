package ports

import (
	"context"
	"database/sql"
)

// Stadium is the venue a game is played in.
type Stadium struct {
	ID      string `db:"stadium_id"`
	Name    string `db:"stadium_name"`
	Surface string `db:"surface_type"`
	Roof    string `db:"roof_type"`
}

// GameWeather is the weather row for one game. The table is optional
// in real deployments; a missing row is benign.
type GameWeather struct {
	GameID      string          `db:"game_id"`
	Temperature sql.NullFloat64 `db:"temperature"`
	WindSpeed   sql.NullFloat64 `db:"wind_speed"`
	Conditions  sql.NullString  `db:"conditions"`
}

// BettingLine is the consensus market line for one game.
type BettingLine struct {
	GameID         string          `db:"game_id"`
	Season         int             `db:"season"`
	Spread         sql.NullFloat64 `db:"spread_line"`
	Total          sql.NullFloat64 `db:"total_line"`
	FavoriteTeamID sql.NullString  `db:"favorite_team_id"`
	UnderdogTeamID sql.NullString  `db:"underdog_team_id"`
}

// InjuryReport is a player's designation for one week.
type InjuryReport struct {
	PlayerID string `db:"player_id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	Status   string `db:"status"`
}

// GameEnvironment bundles the venue and weather of one historical game
// for condition-history classification.
type GameEnvironment struct {
	GameID      string          `db:"game_id"`
	Surface     sql.NullString  `db:"surface_type"`
	Roof        sql.NullString  `db:"roof_type"`
	Temperature sql.NullFloat64 `db:"temperature"`
	WindSpeed   sql.NullFloat64 `db:"wind_speed"`
	Conditions  sql.NullString  `db:"conditions"`
}

// ContextStore reads the optional context surrounding a game. Every
// lookup returns (nil, nil) when the row is absent.
type ContextStore interface {
	StadiumByID(ctx context.Context, stadiumID string) (*Stadium, error)
	WeatherByGame(ctx context.Context, gameID string) (*GameWeather, error)
	BettingLineByGame(ctx context.Context, gameID string, season int) (*BettingLine, error)
	InjuryStatus(ctx context.Context, playerID string, season, week int) (*InjuryReport, error)
	// GameEnvironments resolves venue and weather for a batch of
	// historical games; games without data are simply missing from the
	// result map.
	GameEnvironments(ctx context.Context, gameIDs []string) (map[string]GameEnvironment, error)
}
