package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"media-gallery/internal/config"
	"media-gallery/internal/domain/media"
)

const deletedKey = "deleted"

// RedisClient wraps the Redis client and persists gallery deletions in a set
// Note: This works with both Redis and Valkey (Redis-compatible)
type RedisClient struct {
	client    *redis.Client
	keyPrefix string
}

var _ media.DeletionLog = (*RedisClient)(nil)

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg config.CacheConfig) (*RedisClient, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("cache is disabled")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.Database,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close() //nolint:errcheck // Connection cleanup in error path
		return nil, fmt.Errorf("failed to connect to Redis/Valkey: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "gallery"
	}

	return &RedisClient{
		client:    rdb,
		keyPrefix: prefix,
	}, nil
}

func (r *RedisClient) key(name string) string {
	return r.keyPrefix + ":" + name
}

// Record adds id to the set of deleted entries
func (r *RedisClient) Record(ctx context.Context, id int) error {
	if err := r.client.SAdd(ctx, r.key(deletedKey), id).Err(); err != nil {
		return fmt.Errorf("failed to record deletion of %d: %w", id, err)
	}
	return nil
}

// Deleted returns every recorded deletion
func (r *RedisClient) Deleted(ctx context.Context) ([]int, error) {
	members, err := r.client.SMembers(ctx, r.key(deletedKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read deletions: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt deletion entry %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Reset forgets every recorded deletion
func (r *RedisClient) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(deletedKey)).Err(); err != nil {
		return fmt.Errorf("failed to reset deletions: %w", err)
	}
	return nil
}

// Health checks if the Redis/Valkey connection is healthy
func (r *RedisClient) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis/Valkey health check failed: %w", err)
	}
	return nil
}

// Close closes the Redis/Valkey connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
