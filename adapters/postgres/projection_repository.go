package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"floorcast/internal/config"
	"floorcast/ports"
)

// ProjectionRepositoryImpl implements ProjectionStore for PostgreSQL
type ProjectionRepositoryImpl struct {
	db    *sqlx.DB
	retry retrier
}

// NewProjectionRepository creates a new PostgreSQL projection repository
func NewProjectionRepository(db *sqlx.DB, cfg config.RetryConfig) ports.ProjectionStore {
	return &ProjectionRepositoryImpl{db: db, retry: newRetrier(cfg)}
}

// UpsertProjection writes one projection record, replacing any earlier
// run's row for the same player, stat, and game.
func (r *ProjectionRepositoryImpl) UpsertProjection(ctx context.Context, p ports.Projection) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return r.retry.do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO performance_floors (
				projection_id, player_id, game_id, season, week, stat_category,
				floor_value, expected_value, ceiling_value, confidence_level,
				opponent_factor, environment_details, confidence_label,
				confidence_score, injury_factor, sample_size, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
			ON CONFLICT (player_id, game_id, stat_category) DO UPDATE SET
				floor_value = EXCLUDED.floor_value,
				expected_value = EXCLUDED.expected_value,
				ceiling_value = EXCLUDED.ceiling_value,
				confidence_level = EXCLUDED.confidence_level,
				opponent_factor = EXCLUDED.opponent_factor,
				environment_details = EXCLUDED.environment_details,
				confidence_label = EXCLUDED.confidence_label,
				confidence_score = EXCLUDED.confidence_score,
				injury_factor = EXCLUDED.injury_factor,
				sample_size = EXCLUDED.sample_size,
				updated_at = NOW()`,
			p.ID, p.PlayerID, p.GameID, p.Season, p.Week, p.Stat,
			p.Floor, p.Expected, p.Ceiling, p.Confidence,
			p.OpponentFactor, p.EnvironmentDetails, p.ConfidenceLabel,
			p.ConfidenceScore, p.InjuryFactor, p.SampleSize)
		return err
	})
}
