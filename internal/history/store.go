// Package history persists a record of completed validation runs to
// PostgreSQL. Persistence is optional: the engine works without a
// database, and callers only construct a Store when a connection string
// is configured.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdstools/sdsclean/internal/core"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id            UUID PRIMARY KEY,
	directory     TEXT NOT NULL,
	error_count   INTEGER NOT NULL,
	removed_count INTEGER NOT NULL,
	duration_ms   BIGINT NOT NULL,
	started_at    TIMESTAMPTZ NOT NULL
)`

// Run is one persisted validation run.
type Run struct {
	ID           string    `json:"id"`
	Directory    string    `json:"directory"`
	ErrorCount   int       `json:"errorCount"`
	RemovedCount int       `json:"removedCount"`
	DurationMS   int64     `json:"durationMs"`
	StartedAt    time.Time `json:"startedAt"`
}

// Store writes and reads run history.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database, verifies the connection, and ensures
// the runs table exists.
func Open(ctx context.Context, url string, maxConns int) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	poolConfig.MaxConns = int32(maxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring validation_runs table: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Record stores one completed run.
func (s *Store) Record(ctx context.Context, res core.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO validation_runs (id, directory, error_count, removed_count, duration_ms, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		res.RunID, res.Directory, len(res.Errors), res.RemovedCount(),
		res.Duration.Milliseconds(), res.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", res.RunID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, directory, error_count, removed_count, duration_ms, started_at
		 FROM validation_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Directory, &r.ErrorCount, &r.RemovedCount, &r.DurationMS, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
