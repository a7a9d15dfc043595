package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"linkmono/internal/config"
	"linkmono/internal/model"
)

// RedisCountCache is a CountCache backed by Redis string keys with a TTL.
type RedisCountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ CountCache = (*RedisCountCache)(nil)

// NewRedis connects to cfg.Addr and verifies the connection with a ping.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisCountCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisCountCache(rdb, cfg.CountTTL()), nil
}

// NewRedisCountCache wraps an existing client.
func NewRedisCountCache(rdb *redis.Client, ttl time.Duration) *RedisCountCache {
	return &RedisCountCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCountCache) GetCount(ctx context.Context, target model.SearchTarget, q string) (int, bool, error) {
	n, err := c.rdb.Get(ctx, countKey(target, q)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *RedisCountCache) SetCount(ctx context.Context, target model.SearchTarget, q string, n int) error {
	return c.rdb.Set(ctx, countKey(target, q), n, c.ttl).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCountCache) Close() error {
	return c.rdb.Close()
}
