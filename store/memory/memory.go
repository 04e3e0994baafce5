// Package memory provides an in-memory RunStore for tests and
// single-process deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
)

// MemoryRunStore implements store.RunStore with a mutex-guarded map.
type MemoryRunStore struct {
	mu      sync.RWMutex
	records map[string]*store.RunRecord
}

// NewMemoryRunStore creates a new in-memory run store.
func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{
		records: make(map[string]*store.RunRecord),
	}
}

var _ store.RunStore = (*MemoryRunStore)(nil)

// Save stores a run record.
func (s *MemoryRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	if record.RunID == "" {
		return fmt.Errorf("run record has empty run id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *record
	s.records[record.RunID] = &cp
	return nil
}

// Load retrieves a run record by run ID.
func (s *MemoryRunStore) Load(ctx context.Context, runID string) (*store.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[runID]
	if !ok {
		return nil, fmt.Errorf("run record not found: %s", runID)
	}
	cp := *record
	return &cp, nil
}

// List returns all records for a pipeline, newest first.
func (s *MemoryRunStore) List(ctx context.Context, pipeline string) ([]*store.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*store.RunRecord
	for _, record := range s.records {
		if record.Pipeline == pipeline {
			cp := *record
			records = append(records, &cp)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].FinishedAt.After(records[j].FinishedAt)
	})
	return records, nil
}

// Delete removes a run record.
func (s *MemoryRunStore) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[runID]; !ok {
		return fmt.Errorf("run record not found: %s", runID)
	}
	delete(s.records, runID)
	return nil
}
