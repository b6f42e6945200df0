// Package cache wraps Redis behind a small key/value contract.
//
// Values are JSON-encoded. A nil or unreachable Redis never fails the
// caller: reads miss and writes are dropped.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

// Store is the contract used by cache-aware services.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

var RDB *redis.Client

// Connect initialises the Redis client and verifies the connection with a ping.
// Returns an error so the caller can react (log warning, fall back, or abort).
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := RDB.Ping(ctx).Err(); err != nil {
		_ = RDB.Close()
		RDB = nil // Get and Set no-op without a client
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Close releases the shared client.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Redis is a Store backed by a go-redis client.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis { return &Redis{client: client} }

// Default returns a Store over the shared client.
func Default() Store { return NewRedis(RDB) }

func (s *Redis) Get(ctx context.Context, key string, dest any) bool {
	if s.client == nil {
		return false
	}

	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

func (s *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

// Incr bumps an integer key, creating it at 1.
func (s *Redis) Incr(ctx context.Context, key string) (int64, error) {
	if s.client == nil {
		return 0, ErrUnavailable
	}
	return s.client.Incr(ctx, key).Result()
}

// ErrUnavailable is returned by operations that cannot degrade silently.
var ErrUnavailable = errors.New("cache: backend unavailable")
