// Package db provides PostgreSQL persistence for users, profile versions and
// the generation run history.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profile_versions (
	user_id UUID NOT NULL REFERENCES users(id),
	version INT NOT NULL,
	profile JSONB NOT NULL,
	completeness INT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, version)
);

CREATE TABLE IF NOT EXISTS generation_runs (
	run_id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	profile_version INT NOT NULL,
	state TEXT NOT NULL,
	failure_cause TEXT NOT NULL DEFAULT '',
	job_ids JSONB NOT NULL,
	jobs JSONB NOT NULL,
	prefs JSONB,
	artifacts JSONB,
	bundle_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_generation_runs_history
	ON generation_runs (user_id, created_at DESC);
`
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
