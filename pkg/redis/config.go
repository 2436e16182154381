package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient connects to the query log store. The caller decides whether a
// failure is fatal; the consultation flow runs fine without it.
func RedisClient(redisHost, redisPort, redisUsername, redisPassword string, maxRetries int) (*redis.Client, error) {
	redisURL := fmt.Sprintf("%s:%s", redisHost, redisPort)

	client := redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Username:     redisUsername,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MaxRetries:   1,
	})

	if maxRetries < 1 {
		maxRetries = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			log.Println("✨ Connected to Redis successfully")
			return client, nil
		}
		log.Printf("Failed to connect to Redis (attempt %d/%d): %v", i+1, maxRetries, lastErr)
		if i < maxRetries-1 {
			time.Sleep(time.Second)
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, lastErr)
}
