package ports

import "context"

// Projection is one persisted floor/expected/ceiling record for one
// player, stat, and target game.
type Projection struct {
	ID       string `db:"projection_id"`
	PlayerID string `db:"player_id"`
	GameID   string `db:"game_id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	Stat     string `db:"stat_category"`

	Floor      float64 `db:"floor_value"`
	Expected   float64 `db:"expected_value"`
	Ceiling    float64 `db:"ceiling_value"`
	Confidence float64 `db:"confidence_level"`

	OpponentFactor     float64 `db:"opponent_factor"`
	EnvironmentDetails string  `db:"environment_details"`
	ConfidenceLabel    string  `db:"confidence_label"`
	ConfidenceScore    float64 `db:"confidence_score"`
	InjuryFactor       float64 `db:"injury_factor"`
	SampleSize         int     `db:"sample_size"`
}

// ProjectionStore persists projection records, one row per
// player/stat/game, replaced on re-runs.
type ProjectionStore interface {
	UpsertProjection(ctx context.Context, p Projection) error
}
