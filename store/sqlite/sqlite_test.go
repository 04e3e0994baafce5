package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
)

func newTestStore(t *testing.T) *SqliteRunStore {
	t.Helper()
	s, err := NewSqliteRunStore(SqliteOptions{
		Path: filepath.Join(t.TempDir(), "runs.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(id, pipeline string, finished time.Time) *store.RunRecord {
	return &store.RunRecord{
		RunID:      id,
		Pipeline:   pipeline,
		Status:     "completed",
		Outputs:    map[string]string{"document": "RENTAL AGREEMENT ..."},
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
	}
}

func TestSqliteRunStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := record("run-1", "document_drafting", time.Now().UTC())
	require.NoError(t, s.Save(ctx, rec))

	loaded, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Pipeline, loaded.Pipeline)
	assert.Equal(t, rec.Status, loaded.Status)
	assert.Equal(t, rec.Outputs, loaded.Outputs)
	assert.WithinDuration(t, rec.FinishedAt, loaded.FinishedAt, time.Second)
}

func TestSqliteRunStore_SaveUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := record("run-1", "document_drafting", time.Now().UTC())
	require.NoError(t, s.Save(ctx, rec))

	rec.Status = "halted"
	require.NoError(t, s.Save(ctx, rec))

	loaded, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "halted", loaded.Status)
}

func TestSqliteRunStore_LoadNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSqliteRunStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, s.Save(ctx, record("run-old", "case_analysis", base.Add(-time.Hour))))
	require.NoError(t, s.Save(ctx, record("run-new", "case_analysis", base)))
	require.NoError(t, s.Save(ctx, record("run-other", "document_drafting", base)))

	records, err := s.List(ctx, "case_analysis")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-new", records[0].RunID)
	assert.Equal(t, "run-old", records[1].RunID)
}

func TestSqliteRunStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, record("run-1", "case_analysis", time.Now().UTC())))
	require.NoError(t, s.Delete(ctx, "run-1"))

	_, err := s.Load(ctx, "run-1")
	assert.Error(t, err)
}
