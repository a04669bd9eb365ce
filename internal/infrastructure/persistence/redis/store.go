// Package redis implements a Redis-backed Store for the learning hub.
// Collections are whole JSON blobs under prefixed keys; Update uses WATCH
// with an optimistic transaction so concurrent writers cannot lose updates.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// KeyPrefix namespaces the hub's collections, e.g. "nlh:".
	KeyPrefix string

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MaxRetries is how many times an optimistic Update retries after
	// losing a WATCH race before giving up with ErrConflict.
	MaxRetries int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		KeyPrefix:    "nlh:",
		PoolSize:     10,
		MaxRetries:   5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store is a Redis-backed blob store.
type Store struct {
	client *redis.Client
	prefix string
	// retries for optimistic Update
	maxRetries int
}

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}

	return &Store{
		client:     client,
		prefix:     cfg.KeyPrefix,
		maxRetries: maxRetries,
	}, nil
}

// key namespaces a collection key.
func (s *Store) key(key string) string {
	return s.prefix + key
}

// Load implements persistence.Store.
func (s *Store) Load(ctx context.Context, key string, v any) error {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return persistence.ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("redis: get %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("redis: decode %q: %w", key, err)
	}
	return nil
}

// Save implements persistence.Store.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis: encode %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}

// Update implements persistence.Store using WATCH: the key is watched, fn
// runs on the current blob, and the write commits only if nobody else wrote
// the key in between. Lost races retry up to maxRetries times.
func (s *Store) Update(ctx context.Context, key string, fn persistence.UpdateFunc) error {
	redisKey := s.key(key)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, redisKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis: get %q: %w", key, err)
		}
		if errors.Is(err, redis.Nil) {
			raw = nil
		}

		next, err := fn(raw)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < s.maxRetries; i++ {
		err := s.client.Watch(ctx, txn, redisKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // lost the race, retry on fresh state
		}
		return err
	}
	return persistence.ErrConflict
}

// Close implements persistence.Store.
func (s *Store) Close() error {
	return s.client.Close()
}
