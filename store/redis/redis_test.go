package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
)

func newTestStore(t *testing.T) (*RedisRunStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s := NewRedisRunStore(RedisOptions{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisRunStore_SaveAndLoad(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	rec := &store.RunRecord{
		RunID:      "run-1",
		Pipeline:   "case_analysis",
		Status:     "completed",
		Outputs:    map[string]string{"analysis": "text"},
		StartedAt:  time.Now().Add(-time.Minute).UTC(),
		FinishedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Save(ctx, rec))

	loaded, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Pipeline, loaded.Pipeline)
	assert.Equal(t, rec.Status, loaded.Status)
	assert.Equal(t, rec.Outputs, loaded.Outputs)
}

func TestRedisRunStore_LoadNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRedisRunStore_ListNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, s.Save(ctx, &store.RunRecord{
			RunID:      id,
			Pipeline:   "case_analysis",
			Status:     "completed",
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := s.List(ctx, "case_analysis")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "run-c", records[0].RunID)
	assert.Equal(t, "run-a", records[2].RunID)
}

func TestRedisRunStore_ListEmptyPipeline(t *testing.T) {
	s, _ := newTestStore(t)
	records, err := s.List(context.Background(), "nothing_here")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisRunStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.RunRecord{RunID: "run-1", Pipeline: "p"}))
	require.NoError(t, s.Delete(ctx, "run-1"))

	_, err := s.Load(ctx, "run-1")
	assert.Error(t, err)
}

func TestRedisRunStore_DeleteCleansPipelineIndex(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.RunRecord{RunID: "run-1", Pipeline: "case_analysis"}))
	require.NoError(t, s.Save(ctx, &store.RunRecord{RunID: "run-2", Pipeline: "case_analysis"}))
	require.NoError(t, s.Delete(ctx, "run-1"))

	// No dangling member in the pipeline set.
	members, err := s.client.SMembers(ctx, s.pipelineKey("case_analysis")).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"run-2"}, members)

	records, err := s.List(ctx, "case_analysis")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-2", records[0].RunID)
}

func TestRedisRunStore_DeleteMissing(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRedisRunStore_TTLExpiresRecords(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s := NewRedisRunStore(RedisOptions{Addr: mr.Addr(), TTL: time.Minute})
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.RunRecord{RunID: "run-1", Pipeline: "case_analysis"}))

	mr.FastForward(2 * time.Minute)

	_, err = s.Load(ctx, "run-1")
	assert.Error(t, err)

	// The pipeline index expired with the record.
	records, err := s.List(ctx, "case_analysis")
	require.NoError(t, err)
	assert.Empty(t, records)
}
