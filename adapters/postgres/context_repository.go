package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"floorcast/internal/config"
	"floorcast/ports"
)

// ContextRepositoryImpl implements ContextStore for PostgreSQL. All
// lookups treat a missing row as (nil, nil): stadiums, weather,
// betting lines, and injury reports are optional context.
type ContextRepositoryImpl struct {
	db    *sqlx.DB
	retry retrier
}

// NewContextRepository creates a new PostgreSQL context repository
func NewContextRepository(db *sqlx.DB, cfg config.RetryConfig) ports.ContextStore {
	return &ContextRepositoryImpl{db: db, retry: newRetrier(cfg)}
}

func (r *ContextRepositoryImpl) StadiumByID(ctx context.Context, stadiumID string) (*ports.Stadium, error) {
	var stadium ports.Stadium
	found := false
	err := r.retry.do(ctx, func() error {
		err := r.db.GetContext(ctx, &stadium, `
			SELECT stadium_id, stadium_name, surface_type, roof_type
			FROM stadiums
			WHERE stadium_id = $1`, stadiumID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &stadium, nil
}

func (r *ContextRepositoryImpl) WeatherByGame(ctx context.Context, gameID string) (*ports.GameWeather, error) {
	var weather ports.GameWeather
	found := false
	err := r.retry.do(ctx, func() error {
		err := r.db.GetContext(ctx, &weather, `
			SELECT game_id, temperature, wind_speed, conditions
			FROM game_weather
			WHERE game_id = $1`, gameID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &weather, nil
}

func (r *ContextRepositoryImpl) BettingLineByGame(ctx context.Context, gameID string, season int) (*ports.BettingLine, error) {
	var line ports.BettingLine
	found := false
	err := r.retry.do(ctx, func() error {
		err := r.db.GetContext(ctx, &line, `
			SELECT game_id, season, spread_line, total_line, favorite_team_id, underdog_team_id
			FROM game_betting_lines
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
	return &line, nil
}

func (r *ContextRepositoryImpl) InjuryStatus(ctx context.Context, playerID string, season, week int) (*ports.InjuryReport, error) {
	var report ports.InjuryReport
	found := false
	err := r.retry.do(ctx, func() error {
		err := r.db.GetContext(ctx, &report, `
			SELECT player_id, season, week, status
			FROM player_injury_status
			WHERE player_id = $1 AND season = $2 AND week = $3`, playerID, season, week)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}

func (r *ContextRepositoryImpl) GameEnvironments(ctx context.Context, gameIDs []string) (map[string]ports.GameEnvironment, error) {
	if len(gameIDs) == 0 {
		return map[string]ports.GameEnvironment{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT g.game_id, st.surface_type, st.roof_type,
		       w.temperature, w.wind_speed, w.conditions
		FROM games g
		LEFT JOIN stadiums st ON st.stadium_id = g.stadium_id
		LEFT JOIN game_weather w ON w.game_id = g.game_id
		WHERE g.game_id IN (?)`, gameIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []ports.GameEnvironment
	err = r.retry.do(ctx, func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]ports.GameEnvironment, len(rows))
	for _, row := range rows {
		out[row.GameID] = row
	}
	return out, nil
}
