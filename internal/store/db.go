// Package store is the read/write boundary to Postgres (§6): it loads
// location samples, route definitions, and schedules for a target
// date, and writes the finished report array back. Adapted from the
// teacher's db.go connection-pool setup.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a connection pool against databaseURL. Conservative
// pool sizing, same rationale as the teacher: each worker acquires a
// connection for the duration of its loaders and releases it before
// the cleaner stage begins (§5), so the pool need not be large.
func NewPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return pool, nil
}

// Ping verifies DB connectivity, the same smoke-test the teacher's
// main.go runs before starting work.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	var ok int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&ok); err != nil {
		return fmt.Errorf("database connectivity check failed: %w", err)
	}
	return nil
}
