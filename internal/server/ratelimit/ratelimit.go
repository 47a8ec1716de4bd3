// Package ratelimit provides fixed-window request rate limiting.
//
// Counters live in Redis when a client is configured, so limits hold
// across replicas; otherwise an in-process store is used.
package ratelimit

import (
	"context"
	"time"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Store counts requests per key within a fixed window.
type Store interface {
	// Incr increments the counter for key, starting a new window when none
	// is active, and returns the count and the time left in the window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Limit   int           // requests per window per client
	Window  time.Duration // window length
}

// Limiter enforces a fixed-window limit per client.
type Limiter struct {
	store  Store
	config Config
}

// NewLimiter creates a rate limiter backed by the given store.
func NewLimiter(store Store, config Config) *Limiter {
	return &Limiter{store: store, config: config}
}

// Allow checks if a request from the given client is allowed.
// Store failures permit the request: losing a counter beats refusing traffic.
func (l *Limiter) Allow(ctx context.Context, clientID string) (bool, Info) {
	if !l.config.Enabled || l.config.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	count, ttl, err := l.store.Incr(ctx, "ratelimit:"+clientID, l.config.Window)
	if err != nil {
		return true, Info{Allowed: true}
	}

	info := Info{
		Limit:     l.config.Limit,
		Remaining: l.config.Limit - int(count),
		ResetTime: time.Now().Add(ttl),
	}
	if info.Remaining < 0 {
		info.Remaining = 0
	}

	if count > int64(l.config.Limit) {
		info.Allowed = false
		info.RetryAfter = ttl
		return false, info
	}

	info.Allowed = true
	return true, info
}
