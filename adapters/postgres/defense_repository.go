package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"floorcast/internal/config"
	"floorcast/ports"
)

// DefenseRepositoryImpl implements DefenseStore for PostgreSQL
type DefenseRepositoryImpl struct {
	db    *sqlx.DB
	retry retrier
}

// NewDefenseRepository creates a new PostgreSQL defense repository
func NewDefenseRepository(db *sqlx.DB, cfg config.RetryConfig) ports.DefenseStore {
	return &DefenseRepositoryImpl{db: db, retry: newRetrier(cfg)}
}

const defenseColumns = `
	d.team_id, d.game_id, d.season, d.week,
	d.passing_yards_allowed, d.rushing_yards_allowed, d.receiving_yards_allowed`

func (r *DefenseRepositoryImpl) TeamDefenseGames(ctx context.Context, teamID string, season, beforeWeek int) ([]ports.TeamDefenseGame, error) {
	var rows []ports.TeamDefenseGame
	err := r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &rows, `
			SELECT `+defenseColumns+`
			FROM team_defense_stats d
			JOIN games g ON g.game_id = d.game_id AND g.season = d.season
			WHERE d.team_id = $1 AND d.season = $2 AND d.week < $3
			  AND g.status = $4
			ORDER BY d.week`, teamID, season, beforeWeek, ports.GameStatusFinal)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DefenseRepositoryImpl) LeagueDefenseGames(ctx context.Context, season, beforeWeek int) ([]ports.TeamDefenseGame, error) {
	var rows []ports.TeamDefenseGame
	err := r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &rows, `
			SELECT `+defenseColumns+`
			FROM team_defense_stats d
			JOIN games g ON g.game_id = d.game_id AND g.season = d.season
			WHERE d.season = $1 AND d.week < $2
			  AND g.status = $3
			ORDER BY d.team_id, d.week`, season, beforeWeek, ports.GameStatusFinal)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
