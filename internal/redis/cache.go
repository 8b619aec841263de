package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamecompat/internal/config"
	"github.com/gamecompat/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Cache provides Redis-based caching for library snapshots and analysis results
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewCache creates a new Redis cache
func NewCache(cfg *config.RedisConfig, logger *slog.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Cache{
		client: client,
		logger: logger,
	}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client
func (c *Cache) Client() *redis.Client {
	return c.client
}

// libraryKey returns the Redis key for a user's library snapshot
func (c *Cache) libraryKey(userID string) string {
	return fmt.Sprintf("library:%s:snapshot", userID)
}

// resultKey returns the Redis key for a pair's cached analysis result.
// The pair is ordered so both argument orders hit the same entry.
func (c *Cache) resultKey(user1ID, user2ID string) string {
	if user2ID < user1ID {
		user1ID, user2ID = user2ID, user1ID
	}
	return fmt.Sprintf("compat:%s:%s:result", user1ID, user2ID)
}

// SetLibrary caches a library snapshot with the given TTL
func (c *Cache) SetLibrary(ctx context.Context, lib *domain.GameLibrary, ttl time.Duration) error {
	data, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("marshaling library: %w", err)
	}
	if err := c.client.Set(ctx, c.libraryKey(lib.UserID), data, ttl).Err(); err != nil {
		return fmt.Errorf("setting library snapshot: %w", err)
	}
	return nil
}

// GetLibrary retrieves a cached library snapshot. A cache miss returns
// (nil, nil).
func (c *Cache) GetLibrary(ctx context.Context, userID string) (*domain.GameLibrary, error) {
	data, err := c.client.Get(ctx, c.libraryKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("getting library snapshot: %w", err)
	}

	var lib domain.GameLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("unmarshaling library: %w", err)
	}
	return &lib, nil
}

// InvalidateLibrary removes a user's cached library snapshot
func (c *Cache) InvalidateLibrary(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.libraryKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidating library snapshot: %w", err)
	}
	return nil
}

// SetResult caches an analysis result for a user pair with the given TTL
func (c *Cache) SetResult(ctx context.Context, result *domain.CompatibilityResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	key := c.resultKey(result.User1ID, result.User2ID)
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("setting analysis result: %w", err)
	}
	return nil
}

// GetResult retrieves a cached analysis result for a user pair. A cache miss
// returns (nil, nil).
func (c *Cache) GetResult(ctx context.Context, user1ID, user2ID string) (*domain.CompatibilityResult, error) {
	data, err := c.client.Get(ctx, c.resultKey(user1ID, user2ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("getting analysis result: %w", err)
	}

	var result domain.CompatibilityResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &result, nil
}

// InvalidateResult removes a pair's cached analysis result
func (c *Cache) InvalidateResult(ctx context.Context, user1ID, user2ID string) error {
	if err := c.client.Del(ctx, c.resultKey(user1ID, user2ID)).Err(); err != nil {
		return fmt.Errorf("invalidating analysis result: %w", err)
	}
	return nil
}

// WarmResults caches multiple analysis results using pipelining
func (c *Cache) WarmResults(ctx context.Context, results []*domain.CompatibilityResult, ttl time.Duration) error {
	if len(results) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, result := range results {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		pipe.Set(ctx, c.resultKey(result.User1ID, result.User2ID), data, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("warming analysis results: %w", err)
	}
	return nil
}
