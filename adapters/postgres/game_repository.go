package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"floorcast/internal/config"
	"floorcast/ports"
)

// GameRepositoryImpl implements GameStore for PostgreSQL
type GameRepositoryImpl struct {
	db    *sqlx.DB
	retry retrier
}

// NewGameRepository creates a new PostgreSQL game repository
func NewGameRepository(db *sqlx.DB, cfg config.RetryConfig) ports.GameStore {
	return &GameRepositoryImpl{db: db, retry: newRetrier(cfg)}
}

func (r *GameRepositoryImpl) GameByID(ctx context.Context, gameID string, season int) (*ports.Game, error) {
	var game ports.Game
	found := false
	err := r.retry.do(ctx, func() error {
		err := r.db.GetContext(ctx, &game, `
			SELECT game_id, season, week, status, home_team_id, away_team_id, game_date, stadium_id
			FROM games
			WHERE game_id = $1 AND season = $2`, gameID, season)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepositoryImpl) GamesByWeek(ctx context.Context, season, week int) ([]ports.Game, error) {
	var games []ports.Game
	err := r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &games, `
			SELECT game_id, season, week, status, home_team_id, away_team_id, game_date, stadium_id
			FROM games
			WHERE season = $1 AND week = $2
			ORDER BY game_date, game_id`, season, week)
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}
