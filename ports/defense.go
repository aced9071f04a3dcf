package ports

import (
	"context"
	"database/sql"
)

// TeamDefenseGame is the yardage one team's defense allowed in one
// completed game, broken out by category.
type TeamDefenseGame struct {
	TeamID string `db:"team_id"`
	GameID string `db:"game_id"`
	Season int    `db:"season"`
	Week   int    `db:"week"`

	PassingYardsAllowed   sql.NullFloat64 `db:"passing_yards_allowed"`
	RushingYardsAllowed   sql.NullFloat64 `db:"rushing_yards_allowed"`
	ReceivingYardsAllowed sql.NullFloat64 `db:"receiving_yards_allowed"`
}

// Allowed returns the allowed value for a stat category
// (passing/rushing/receiving).
func (d *TeamDefenseGame) Allowed(category string) (float64, bool) {
	switch category {
	case "passing":
		return nullable(d.PassingYardsAllowed)
	case "rushing":
		return nullable(d.RushingYardsAllowed)
	case "receiving":
		return nullable(d.ReceivingYardsAllowed)
	}
	return 0, false
}

// DefenseStore reads defensive aggregates for opponent-strength
// estimation.
type DefenseStore interface {
	// TeamDefenseGames returns one team's defensive lines from final
	// games before the cutoff week.
	TeamDefenseGames(ctx context.Context, teamID string, season, beforeWeek int) ([]TeamDefenseGame, error)
	// LeagueDefenseGames returns every team's defensive lines in the
	// same window, for league averages and variance decomposition.
	LeagueDefenseGames(ctx context.Context, season, beforeWeek int) ([]TeamDefenseGame, error)
}
