// Package redis provides a Redis-backed RunStore, suitable when several
// processes share run history or records should expire automatically.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/store"
	"github.com/redis/go-redis/v9"
)

// RedisRunStore implements store.RunStore using Redis.
type RedisRunStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "legalassist:"
	TTL      time.Duration // Expiration for records, default 0 (no expiration)
}

// NewRedisRunStore creates a new Redis run store.
func NewRedisRunStore(opts RedisOptions) *RedisRunStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "legalassist:"
	}

	return &RedisRunStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

var _ store.RunStore = (*RedisRunStore)(nil)

func (s *RedisRunStore) runKey(id string) string {
	return fmt.Sprintf("%srun:%s", s.prefix, id)
}

func (s *RedisRunStore) pipelineKey(pipeline string) string {
	return fmt.Sprintf("%spipeline:%s:runs", s.prefix, pipeline)
}

// Save stores a run record.
func (s *RedisRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.runKey(record.RunID), data, s.ttl)

	if record.Pipeline != "" {
		pipeKey := s.pipelineKey(record.Pipeline)
		pipe.SAdd(ctx, pipeKey, record.RunID)
		if s.ttl > 0 {
			pipe.Expire(ctx, pipeKey, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run record to redis: %w", err)
	}
	return nil
}

// Load retrieves a run record by run ID.
func (s *RedisRunStore) Load(ctx context.Context, runID string) (*store.RunRecord, error) {
	data, err := s.client.Get(ctx, s.runKey(runID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("run record not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to load run record from redis: %w", err)
	}

	var record store.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}
	return &record, nil
}

// List returns all records for a pipeline, newest first.
func (s *RedisRunStore) List(ctx context.Context, pipeline string) ([]*store.RunRecord, error) {
	runIDs, err := s.client.SMembers(ctx, s.pipelineKey(pipeline)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for pipeline %s: %w", pipeline, err)
	}
	if len(runIDs) == 0 {
		return []*store.RunRecord{}, nil
	}

	keys := make([]string, 0, len(runIDs))
	for _, id := range runIDs {
		keys = append(keys, s.runKey(id))
	}

	// MGet returns nil entries for expired keys; skip them.
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run records: %w", err)
	}

	var records []*store.RunRecord
	for _, result := range results {
		if result == nil {
			continue
		}
		strData, ok := result.(string)
		if !ok {
			continue
		}
		var record store.RunRecord
		if err := json.Unmarshal([]byte(strData), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].FinishedAt.After(records[j].FinishedAt)
	})
	return records, nil
}

// Delete removes a run record and its pipeline index entry.
func (s *RedisRunStore) Delete(ctx context.Context, runID string) error {
	// Load first so the pipeline set can be cleaned alongside the key.
	record, err := s.Load(ctx, runID)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.runKey(runID))
	if record.Pipeline != "" {
		pipe.SRem(ctx, s.pipelineKey(record.Pipeline), runID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete run record: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisRunStore) Close() error {
	return s.client.Close()
}
