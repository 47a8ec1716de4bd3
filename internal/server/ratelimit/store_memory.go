package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps window counters in process memory. Suitable for a single
// replica or as a fallback when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int64
	resetAt time.Time
}

// NewMemoryStore creates an in-process counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window)}
}

// Incr increments the counter for key, starting a new window when the
// previous one has expired.
func (s *MemoryStore) Incr(_ context.Context, key string, windowLen time.Duration) (int64, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(windowLen)}
		s.windows[key] = w
	}
	w.count++

	// Drop expired windows opportunistically to bound memory.
	if len(s.windows) > 10000 {
		for k, other := range s.windows {
			if now.After(other.resetAt) {
				delete(s.windows, k)
			}
		}
	}

	return w.count, time.Until(w.resetAt), nil
}
