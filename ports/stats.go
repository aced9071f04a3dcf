package ports

import (
	"context"
	"database/sql"
)

// Player is roster metadata for one player.
type Player struct {
	ID       string `db:"player_id"`
	Name     string `db:"player_name"`
	Position string `db:"position"`
	TeamID   string `db:"team_id"`
}

// PlayerGameStat is one player's line from one completed game. Stat
// columns are nullable; a null means the stat does not apply to the
// player's usage that week, not zero production.
type PlayerGameStat struct {
	PlayerID string `db:"player_id"`
	GameID   string `db:"game_id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	TeamID   string `db:"team_id"`

	PassingYards     sql.NullFloat64 `db:"passing_yards"`
	PassingAttempts  sql.NullFloat64 `db:"passing_attempts"`
	RushingYards     sql.NullFloat64 `db:"rushing_yards"`
	RushingAttempts  sql.NullFloat64 `db:"rushing_attempts"`
	ReceivingYards   sql.NullFloat64 `db:"receiving_yards"`
	ReceivingTargets sql.NullFloat64 `db:"receiving_targets"`
	FantasyPoints    sql.NullFloat64 `db:"fantasy_points_ppr"`
}

// Stat returns the named statistic value if it is present on this row.
// total_touches is derived from rushing attempts plus receiving targets
// for RB combined-opportunity projections.
func (s *PlayerGameStat) Stat(name string) (float64, bool) {
	switch name {
	case "passing_yards":
		return nullable(s.PassingYards)
	case "passing_attempts":
		return nullable(s.PassingAttempts)
	case "rushing_yards":
		return nullable(s.RushingYards)
	case "rushing_attempts":
		return nullable(s.RushingAttempts)
	case "receiving_yards":
		return nullable(s.ReceivingYards)
	case "receiving_targets":
		return nullable(s.ReceivingTargets)
	case "fantasy_points_ppr":
		return nullable(s.FantasyPoints)
	case "total_touches":
		rush, rok := nullable(s.RushingAttempts)
		targets, tok := nullable(s.ReceivingTargets)
		if !rok && !tok {
			return 0, false
		}
		return rush + targets, true
	}
	return 0, false
}

func nullable(v sql.NullFloat64) (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	return v.Float64, true
}

// StatStore reads player rosters and per-game stat lines. Every query
// is bounded by season and a strict before-week cutoff so projections
// never see the game they are projecting.
type StatStore interface {
	// SkillPlayersByTeam lists QB/RB/WR/TE players on a team's roster.
	SkillPlayersByTeam(ctx context.Context, teamID string, season int) ([]Player, error)
	// PlayerGameStats returns a player's stat lines from final games,
	// chronological by week.
	PlayerGameStats(ctx context.Context, playerID string, season, beforeWeek int) ([]PlayerGameStat, error)
	// PositionGameStats returns stat lines for every player at a
	// position, for position-baseline estimation.
	PositionGameStats(ctx context.Context, position string, season, beforeWeek int) ([]PlayerGameStat, error)
}
