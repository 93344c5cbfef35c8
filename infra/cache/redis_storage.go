// Package cache provides the shared key/value store behind the HTTP rate limiter.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RedisStorage implements fiber.Storage on top of Redis so that rate limit
// counters are shared by every API replica.
type RedisStorage struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisStorage parses cfg.URL and returns a storage using a fresh client.
func NewRedisStorage(cfg *config.Redis, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout
	return NewRedisStorageWithClient(redis.NewClient(opt), cfg.KeyPrefix, logger), nil
}

// NewRedisStorageWithClient wraps an existing client.
func NewRedisStorageWithClient(
	client *redis.Client,
	prefix string,
	logger *slog.Logger,
) *RedisStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStorage{client: client, prefix: prefix, logger: logger}
}

// Ping checks connectivity.
func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStorage) key(key string) string {
	return r.prefix + key
}

// Get returns nil, nil on a miss as fiber.Storage requires.
func (r *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := r.client.Get(context.Background(), r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis storage get error", "key", key, "error", err)
		return nil, err
	}
	return val, nil
}

// Set stores val; exp of zero keeps the key forever.
func (r *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := r.client.Set(context.Background(), r.key(key), val, exp).Err(); err != nil {
		r.logger.Error("Redis storage set error", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		r.logger.Error("Redis storage delete error", "key", key, "error", err)
		return err
	}
	return nil
}

// Reset removes every key under the storage prefix.
func (r *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

var _ fiber.Storage = (*RedisStorage)(nil)
