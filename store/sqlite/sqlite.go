// Package sqlite provides a SQLite-backed RunStore for single-host
// deployments that want durable run history without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
)

// SqliteRunStore implements store.RunStore using SQLite.
type SqliteRunStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "runs"
}

// NewSqliteRunStore creates a new SQLite run store.
func NewSqliteRunStore(opts SqliteOptions) (*SqliteRunStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "runs"
	}

	s := &SqliteRunStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

var _ store.RunStore = (*SqliteRunStore)(nil)

func (s *SqliteRunStore) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT PRIMARY KEY,
			pipeline TEXT NOT NULL,
			status TEXT NOT NULL,
			outputs TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_pipeline ON %s (pipeline);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Save stores a run record.
func (s *SqliteRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	outputs, err := json.Marshal(record.Outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, pipeline, status, outputs, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id) DO UPDATE SET
			status = excluded.status,
			outputs = excluded.outputs,
			finished_at = excluded.finished_at
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		record.RunID, record.Pipeline, record.Status, string(outputs),
		record.StartedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}
	return nil
}

// Load retrieves a run record by run ID.
func (s *SqliteRunStore) Load(ctx context.Context, runID string) (*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT run_id, pipeline, status, outputs, started_at, finished_at
		FROM %s WHERE run_id = ?
	`, s.tableName)

	record := &store.RunRecord{}
	var outputs string
	err := s.db.QueryRowContext(ctx, query, runID).Scan(
		&record.RunID, &record.Pipeline, &record.Status, &outputs,
		&record.StartedAt, &record.FinishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run record not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to load run record: %w", err)
	}

	if err := json.Unmarshal([]byte(outputs), &record.Outputs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outputs: %w", err)
	}
	return record, nil
}

// List returns all records for a pipeline, newest first.
func (s *SqliteRunStore) List(ctx context.Context, pipeline string) ([]*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT run_id, pipeline, status, outputs, started_at, finished_at
		FROM %s WHERE pipeline = ? ORDER BY finished_at DESC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	defer rows.Close()

	var records []*store.RunRecord
	for rows.Next() {
		record := &store.RunRecord{}
		var outputs string
		if err := rows.Scan(&record.RunID, &record.Pipeline, &record.Status, &outputs,
			&record.StartedAt, &record.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		if err := json.Unmarshal([]byte(outputs), &record.Outputs); err != nil {
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
func (s *SqliteRunStore) Delete(ctx context.Context, runID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE run_id = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to delete run record: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SqliteRunStore) Close() error {
	return s.db.Close()
}
