package ratelimit

import (
	"context"
	"time"
)

// WindowStore persists fixed-window counters. Implementations must start a
// fresh window atomically when the previous one has lapsed.
type WindowStore interface {
	// Incr advances the counter for key within the current window and
	// returns the post-increment count together with the window's reset time.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// FixedWindow implements a fixed-window rate limiter: a window is a
// (count, resetTime) pair per key, reset wholesale once resetTime passes.
// Coarser than a sliding window but cheap and good enough for abuse control.
type FixedWindow struct {
	store  WindowStore
	limit  int
	window time.Duration
}

// NewFixedWindow creates a fixed-window limiter allowing limit requests per window.
func NewFixedWindow(store WindowStore, limit int, window time.Duration) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	return &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
	}, nil
}

// Allow checks whether a single request is allowed for the given key.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	count, resetAt, err := fw.store.Incr(ctx, key, fw.window)
	if err != nil {
		return nil, err
	}

	return &Result{
		Allowed:   count <= fw.limit,
		Limit:     fw.limit,
		Remaining: max(0, fw.limit-count),
		ResetAt:   resetAt,
	}, nil
}
