// Package cache provides a Redis-backed cache of match results keyed by request content.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-coach/internal/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix namespaces every cache key
const keyPrefix = "match:"

// Cache stores MatchResult values in Redis. A Cache whose client is nil
// (Redis unavailable at startup) behaves as a permanent miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger

	warnedUnavailable atomic.Bool
}

// Options configures a Cache
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New connects to Redis and pings it. When the ping fails the cache is
// returned in bypass mode rather than failing the caller.
func New(ctx context.Context, opts Options, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(opts.Addr) == "" {
		return NewWithClient(nil, opts.TTL, log)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing result cache", zap.String("addr", opts.Addr), zap.Error(err))
		_ = client.Close()
		return NewWithClient(nil, opts.TTL, log)
	}

	return NewWithClient(client, opts.TTL, log)
}

// NewWithClient wraps an already connected client. A nil client yields a
// cache in bypass mode.
func NewWithClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

// Enabled reports whether the cache is backed by a live client
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Key derives the cache key for a request evaluated with the given employer
// tokens. Identical content yields identical keys.
func Key(req *types.MatchRequest, employers []string) (string, error) {
	payload, err := json.Marshal(struct {
		Request   *types.MatchRequest `json:"request"`
		Employers []string            `json:"employers"`
	}{req, employers})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key payload: %w", err)
	}
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get loads a cached result. ok is false on a miss or when the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string) (*types.MatchResult, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observe(nil)
			return nil, false, nil
		}
		c.observe(err)
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	c.observe(nil)

	var result types.MatchResult
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, true, nil
}

// Set stores a result under key for the configured TTL
func (c *Cache) Set(ctx context.Context, key string, result *types.MatchResult) error {
	if !c.Enabled() {
		return nil
	}

	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.observe(err)
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	c.observe(nil)
	return nil
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// observe records the outcome of a Redis round trip. The first failure of an
// outage is logged; a later success ends the outage so the next one is logged too.
func (c *Cache) observe(err error) {
	if err == nil {
		if c.warnedUnavailable.CompareAndSwap(true, false) {
			c.log.Info("redis reachable again, result cache resumed")
		}
		return
	}
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.log.Warn("redis error, cache results may be stale or missing", zap.Error(err))
	}
}
