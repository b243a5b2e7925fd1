package ratelimit

import (
	"context"
	"sync"
	"time"
)

// defaultMaxEntries is the table size that triggers an opportunistic sweep
// of expired windows. Not an LRU, just a threshold-triggered cleanup.
const defaultMaxEntries = 10_000

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a process-local WindowStore. Each process enforces its own
// quota; for multi-instance deployments use RedisStore behind the same
// Limiter interface.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*windowEntry
	maxEntries int
	now        func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMaxEntries sets the table size threshold that triggers a sweep of
// expired entries.
func WithMaxEntries(n int) MemoryStoreOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides the time source. Intended for tests that advance time
// past a window's reset.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an in-memory fixed-window store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string]*windowEntry),
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Incr advances the counter for key. A lapsed window restarts at count 1.
func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, exists := s.entries[key]

	if !exists || now.After(e.resetAt) {
		e = &windowEntry{
			count:   1,
			resetAt: now.Add(window),
		}
		s.entries[key] = e

		if len(s.entries) > s.maxEntries {
			s.sweepExpired(now)
		}

		return e.count, e.resetAt, nil
	}

	e.count++
	return e.count, e.resetAt, nil
}

// Len reports the number of tracked keys, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweepExpired drops entries whose window has lapsed. Caller holds the lock.
func (s *MemoryStore) sweepExpired(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, key)
		}
	}
}
