// Package postgres implements the ports store interfaces against a
// PostgreSQL schema using sqlx. Every query runs under the caller's
// context and through the bounded-retry executor, so transient
// connection failures are absorbed here rather than surfacing into the
// evaluation pipeline.
package postgres

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"floorcast/internal/config"
	"floorcast/internal/errors"
)

// Connect opens and pings the database described by cfg.
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, errors.StoreError("failed to connect to database", err)
	}
	return db, nil
}
