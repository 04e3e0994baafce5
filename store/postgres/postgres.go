// Package postgres provides a PostgreSQL-backed RunStore for durable run
// history.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresRunStore implements store.RunStore using PostgreSQL.
type PostgresRunStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "runs"
}

// NewPostgresRunStore creates a new Postgres run store.
func NewPostgresRunStore(ctx context.Context, opts PostgresOptions) (*PostgresRunStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "runs"
	}

	return &PostgresRunStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresRunStoreWithPool creates a new Postgres run store with an
// existing pool. Useful for testing with mocks.
func NewPostgresRunStoreWithPool(pool DBPool, tableName string) *PostgresRunStore {
	if tableName == "" {
		tableName = "runs"
	}
	return &PostgresRunStore{
		pool:      pool,
		tableName: tableName,
	}
}

var _ store.RunStore = (*PostgresRunStore)(nil)

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresRunStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT PRIMARY KEY,
			pipeline TEXT NOT NULL,
			status TEXT NOT NULL,
			outputs JSONB NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_pipeline ON %s (pipeline);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Save stores a run record.
func (s *PostgresRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	outputs, err := json.Marshal(record.Outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, pipeline, status, outputs, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO UPDATE SET
			status = EXCLUDED.status,
			outputs = EXCLUDED.outputs,
			finished_at = EXCLUDED.finished_at
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		record.RunID, record.Pipeline, record.Status, outputs, record.StartedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}
	return nil
}

// Load retrieves a run record by run ID.
func (s *PostgresRunStore) Load(ctx context.Context, runID string) (*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT run_id, pipeline, status, outputs, started_at, finished_at
		FROM %s WHERE run_id = $1
	`, s.tableName)

	record := &store.RunRecord{}
	var outputs []byte
	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&record.RunID, &record.Pipeline, &record.Status, &outputs,
		&record.StartedAt, &record.FinishedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("run record not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to load run record: %w", err)
	}

	if err := json.Unmarshal(outputs, &record.Outputs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outputs: %w", err)
	}
	return record, nil
}

// List returns all records for a pipeline, newest first.
func (s *PostgresRunStore) List(ctx context.Context, pipeline string) ([]*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT run_id, pipeline, status, outputs, started_at, finished_at
		FROM %s WHERE pipeline = $1 ORDER BY finished_at DESC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	defer rows.Close()

	var records []*store.RunRecord
	for rows.Next() {
		record := &store.RunRecord{}
		var outputs []byte
		if err := rows.Scan(&record.RunID, &record.Pipeline, &record.Status, &outputs,
			&record.StartedAt, &record.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		if err := json.Unmarshal(outputs, &record.Outputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outputs: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run records: %w", err)
	}
	return records, nil
}

// Delete removes a run record.
func (s *PostgresRunStore) Delete(ctx context.Context, runID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE run_id = $1`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to delete run record: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresRunStore) Close() {
	s.pool.Close()
}
