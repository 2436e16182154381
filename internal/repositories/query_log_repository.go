package repositories

import (
	"context"
	"dbconsultor-ai/internal/models"
	"dbconsultor-ai/pkg/redis"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const queryLogKey = "dbconsultor:queries:recent"

type QueryLogRepository interface {
	Record(ctx context.Context, entry *models.QueryLog) error
	Recent(ctx context.Context, limit int) ([]models.QueryLog, error)
	Enabled() bool
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

type queryLogRepository struct {
	redis    redis.IRedisRepositories
	maxItems int
	ttl      time.Duration
}

func NewQueryLogRepository(redis redis.IRedisRepositories, maxItems int, ttl time.Duration) QueryLogRepository {
	return &queryLogRepository{
		redis:    redis,
		maxItems: maxItems,
		ttl:      ttl,
	}
}

func (r *queryLogRepository) Enabled() bool { return true }

func (r *queryLogRepository) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx)
}

func (r *queryLogRepository) Record(ctx context.Context, entry *models.QueryLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode query log: %w", err)
	}
	if err := r.redis.PushCapped(ctx, queryLogKey, data, int64(r.maxItems), r.ttl); err != nil {
		return fmt.Errorf("failed to store query log: %w", err)
	}
	return nil
}

func (r *queryLogRepository) Recent(ctx context.Context, limit int) ([]models.QueryLog, error) {
	if limit <= 0 || limit > r.maxItems {
		limit = r.maxItems
	}

	values, err := r.redis.Range(ctx, queryLogKey, 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("failed to read query log: %w", err)
	}

	entries := make([]models.QueryLog, 0, len(values))
	for _, value := range values {
		var entry models.QueryLog
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			log.Printf("QueryLogRepository -> Recent -> skipping malformed entry: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// noopQueryLogRepository is used when no Redis host is configured.
type noopQueryLogRepository struct{}

func NewNoopQueryLogRepository() QueryLogRepository {
	return noopQueryLogRepository{}
}

func (noopQueryLogRepository) Enabled() bool { return false }

func (noopQueryLogRepository) Ping(context.Context) error { return nil }

func (noopQueryLogRepository) Record(context.Context, *models.QueryLog) error { return nil }

func (noopQueryLogRepository) Recent(context.Context, int) ([]models.QueryLog, error) {
	return []models.QueryLog{}, nil
}
