package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisRepositories struct {
	Client *redis.Client
}

// IRedisRepositories is the subset of list commands the query log needs.
type IRedisRepositories interface {
	PushCapped(ctx context.Context, key string, value []byte, maxLen int64, ttl time.Duration) error
	Range(ctx context.Context, key string, start, stop int64) ([]string, error)
	Ping(ctx context.Context) error
}

func NewRedisRepositories(client *redis.Client) *RedisRepositories {
	log.Println("🚀 Initialized Repository : Redis")
	return &RedisRepositories{
		Client: client,
	}
}

// PushCapped prepends value to the list at key, trims it to maxLen entries and
// refreshes the key expiration, all in one pipeline.
func (r *RedisRepositories) PushCapped(ctx context.Context, key string, value []byte, maxLen int64, ttl time.Duration) error {
	pipe := r.Client.TxPipeline()
	pipe.LPush(ctx, key, value)
	if maxLen > 0 {
		pipe.LTrim(ctx, key, 0, maxLen-1)
	}
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("RedisRepositories -> PushCapped -> error pushing to %s: %v", key, err)
		return err
	}
	return nil
}

func (r *RedisRepositories) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	values, err := r.Client.LRange(ctx, key, start, stop).Result()
	if err == redis.Nil {
		return []string{}, nil
	}
	if err != nil {
		log.Printf("RedisRepositories -> Range -> error reading %s: %v", key, err)
		return nil, err
	}
	return values, nil
}

func (r *RedisRepositories) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
