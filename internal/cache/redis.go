package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"example.com/relieftrack/services/tracker/config"
	"example.com/relieftrack/services/tracker/internal/model"
)

// CacheClient defines the interface for cache operations
type CacheClient interface {
	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	SetItem(ctx context.Context, item *model.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error

	GetStats(ctx context.Context) ([]byte, error)
	SetStats(ctx context.Context, stats []byte) error
	InvalidateStats(ctx context.Context) error
}

// RedisClient implements CacheClient using Redis
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// NewRedisClient creates a new Redis client. With caching disabled in the
// config every read misses and every write is a no-op.
func NewRedisClient(cfg config.Config) (CacheClient, error) {
	if !cfg.RedisEnabled {
		return &RedisClient{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.RedisTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RedisClient{
		client:  client,
		enabled: true,
		ttl:     ttl,
	}, nil
}

// Prefix keys to avoid collisions
func itemKey(id string) string {
	return fmt.Sprintf("inventory_item:%s", id)
}

const statsKey = "dashboard:stats"

// GetItem retrieves an inventory item from cache
func (c *RedisClient) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	if !c.enabled {
		return nil, redis.Nil
	}

	data, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		return nil, err
	}

	var item model.InventoryItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItem caches an inventory item
func (c *RedisClient) SetItem(ctx context.Context, item *model.InventoryItem) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(item.ID.String()), data, c.ttl).Err()
}

// DeleteItem removes an inventory item from cache
func (c *RedisClient) DeleteItem(ctx context.Context, id string) error {
	if !c.enabled {
		return nil
	}
	return c.client.Del(ctx, itemKey(id)).Err()
}

// GetStats retrieves the cached dashboard stats payload
func (c *RedisClient) GetStats(ctx context.Context) ([]byte, error) {
	if !c.enabled {
		return nil, redis.Nil
	}
	return c.client.Get(ctx, statsKey).Bytes()
}

// SetStats caches the dashboard stats payload
func (c *RedisClient) SetStats(ctx context.Context, stats []byte) error {
	if !c.enabled {
		return nil
	}
	return c.client.Set(ctx, statsKey, stats, c.ttl).Err()
}

// InvalidateStats drops the cached dashboard stats
func (c *RedisClient) InvalidateStats(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	return c.client.Del(ctx, statsKey).Err()
}

// IsMiss reports whether a cache error is just a missing key
func IsMiss(err error) bool {
	return err == redis.Nil
}
