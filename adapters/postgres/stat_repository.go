package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"floorcast/internal/config"
	"floorcast/ports"
)

// StatRepositoryImpl implements StatStore for PostgreSQL
type StatRepositoryImpl struct {
	db    *sqlx.DB
	retry retrier
}

// NewStatRepository creates a new PostgreSQL stat repository
func NewStatRepository(db *sqlx.DB, cfg config.RetryConfig) ports.StatStore {
	return &StatRepositoryImpl{db: db, retry: newRetrier(cfg)}
}

func (r *StatRepositoryImpl) SkillPlayersByTeam(ctx context.Context, teamID string, season int) ([]ports.Player, error) {
	var players []ports.Player
	err := r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &players, `
			SELECT player_id, player_name, position, team_id
			FROM players
			WHERE team_id = $1 AND season = $2
			  AND position IN ('QB', 'RB', 'WR', 'TE')
			ORDER BY position, player_name`, teamID, season)
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

const playerStatColumns = `
	s.player_id, s.game_id, s.season, s.week, s.team_id,
	s.passing_yards, s.passing_attempts,
	s.rushing_yards, s.rushing_attempts,
	s.receiving_yards, s.receiving_targets,
	s.fantasy_points_ppr`

func (r *StatRepositoryImpl) PlayerGameStats(ctx context.Context, playerID string, season, beforeWeek int) ([]ports.PlayerGameStat, error) {
	var stats []ports.PlayerGameStat
	err := r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &stats, `
			SELECT `+playerStatColumns+`
			FROM player_game_stats s
			JOIN games g ON g.game_id = s.game_id AND g.season = s.season
			WHERE s.player_id = $1 AND s.season = $2 AND s.week < $3
			  AND g.status = $4
			ORDER BY s.week`, playerID, season, beforeWeek, ports.GameStatusFinal)
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *StatRepositoryImpl) PositionGameStats(ctx context.Context, position string, season, beforeWeek int) ([]ports.PlayerGameStat, error) {
	var stats []ports.PlayerGameStat
	err := r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &stats, `
			SELECT `+playerStatColumns+`
			FROM player_game_stats s
			JOIN players p ON p.player_id = s.player_id AND p.season = s.season
			JOIN games g ON g.game_id = s.game_id AND g.season = s.season
			WHERE p.position = $1 AND s.season = $2 AND s.week < $3
			  AND g.status = $4
			ORDER BY s.player_id, s.week`, position, season, beforeWeek, ports.GameStatusFinal)
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
