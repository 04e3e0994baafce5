// Package store defines persistence of completed pipeline runs for audit
// and history. Recording is best-effort at run completion: a store failure
// never affects the run result the caller receives.
package store

import (
	"context"
	"time"
)

// RunRecord is the persisted form of one completed pipeline run.
type RunRecord struct {
	RunID      string            `json:"run_id"`
	Pipeline   string            `json:"pipeline"`
	Status     string            `json:"status"`
	Outputs    map[string]string `json:"outputs"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// RunStore is the interface for run history persistence.
type RunStore interface {
	// Save stores a run record.
	Save(ctx context.Context, record *RunRecord) error

	// Load retrieves a run record by run ID.
	Load(ctx context.Context, runID string) (*RunRecord, error)

	// List returns all records for a pipeline, newest first.
	List(ctx context.Context, pipeline string) ([]*RunRecord, error)

	// Delete removes a run record.
	Delete(ctx context.Context, runID string) error
}
