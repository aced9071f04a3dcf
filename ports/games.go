// Package ports defines the store boundary: plain row structs and the
// small read/write interfaces the engine depends on. Adapters implement
// these against Postgres; tests implement them in memory. Lookups for
// rows that simply do not exist return (nil, nil), never an error,
// because absence is an expected condition in sports data.
package ports

import (
	"context"
	"database/sql"
	"time"
)

// GameStatusFinal marks a completed game; only final games feed the
// statistics.
const GameStatusFinal = "final"

// Game is one scheduled or completed game.
type Game struct {
	ID         string         `db:"game_id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	Status     string         `db:"status"`
	HomeTeamID string         `db:"home_team_id"`
	AwayTeamID string         `db:"away_team_id"`
	GameDate   time.Time      `db:"game_date"`
	StadiumID  sql.NullString `db:"stadium_id"`
}

// Opponent returns the other side for a given team, and whether the
// team plays at home.
func (g *Game) Opponent(teamID string) (string, bool) {
	if g.HomeTeamID == teamID {
		return g.AwayTeamID, true
	}
	return g.HomeTeamID, false
}

// GameStore reads game metadata.
type GameStore interface {
	// GameByID returns nil when the game does not exist.
	GameByID(ctx context.Context, gameID string, season int) (*Game, error)
	// GamesByWeek returns every game scheduled in a week.
	GamesByWeek(ctx context.Context, season, week int) ([]Game, error)
}
