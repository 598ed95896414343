package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const solvesSchema = `
CREATE TABLE IF NOT EXISTS solves (
	scenario_key   TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	category       TEXT NOT NULL,
	difficulty     INT NOT NULL,
	solved_at      TIMESTAMPTZ NOT NULL,
	classification TEXT NOT NULL,
	attempts       BIGINT NOT NULL
)`

// PostgresSink records solves in a PostgreSQL table. Each
// scenario solves at most once per run, so the scenario key is
// the primary key and replays are ignored.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects to PostgreSQL, verifies the
// connection, and ensures the solves table exists.
func NewPostgresSink(
	ctx context.Context, dsn string,
) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create postgres pool: %w", err,
		)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf(
			"failed to connect to postgres: %w", err,
		)
	}

	if _, err := pool.Exec(ctx, solvesSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf(
			"failed to ensure solves table: %w", err,
		)
	}

	return &PostgresSink{pool: pool}, nil
}

// RecordSolve persists the record, ignoring duplicates.
func (s *PostgresSink) RecordSolve(
	ctx context.Context, rec SolveRecord,
) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO solves (
			scenario_key, name, category, difficulty,
			solved_at, classification, attempts
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (scenario_key) DO NOTHING`,
		string(rec.Key), rec.Name, rec.Category,
		rec.Difficulty, rec.SolvedAt,
		string(rec.Classification), rec.Attempts,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to record solve %s: %w", rec.Key, err,
		)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}
