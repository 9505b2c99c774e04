// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused this long are dropped
	Allow           map[string]bool
	Deny            map[string]bool
	Policies        []Policy
}

// DefaultConfig returns an enabled configuration with the default policies.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allow:           map[string]bool{},
		Deny:            map[string]bool{},
		Policies:        DefaultPolicies(),
	}
}

// Decision describes the outcome of a rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int // 0 when the request was not metered
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type entry struct {
	bucket   *bucket
	lastSeen time.Time
}

// Limiter tracks one bucket per client and policy. Requests without a
// dedicated policy share the client's default bucket.
type Limiter struct {
	cfg *Config
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and starts its cleanup loop when enabled.
// A nil config uses DefaultConfig.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanupLoop(cfg.CleanupInterval)
	}
	return l
}

// Allow reports whether clientID may issue method on path now.
func (l *Limiter) Allow(clientID, method, path string) Decision {
	if !l.cfg.Enabled || l.cfg.Allow[clientID] {
		return Decision{Allowed: true}
	}
	if l.cfg.Deny[clientID] {
		return Decision{Allowed: false}
	}

	policy, ok := findPolicy(method, path, l.cfg.Policies)
	if !ok {
		policy = Policy{Method: "*", Path: "*", Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}
	}
	if policy.Limit <= 0 {
		return Decision{Allowed: true}
	}

	// Keyed by policy, not request path, so a prefix tier is one bucket per client
	now := l.now()
	b := l.bucketFor(clientID+":"+policy.Method+":"+policy.Path, policy, now)

	allowed, remaining, full := b.take(now)
	d := Decision{
		Allowed:   allowed,
		Limit:     policy.Limit,
		Remaining: remaining,
		ResetTime: full,
	}
	if !allowed {
		d.RetryAfter = b.nextToken(now)
	}
	return d
}

func (l *Limiter) bucketFor(key string, p Policy, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{bucket: newBucket(p.capacity(), p.rate(), now)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.bucket
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle for longer than IdleTTL.
func (l *Limiter) sweep() {
	ttl := l.cfg.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
