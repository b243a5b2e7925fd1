package ratelimit

import (
	"context"
	"time"
)

// Limiter checks whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool      // Whether the request may proceed
	Limit     int       // Maximum requests per window
	Remaining int       // Requests left in the current window
	ResetAt   time.Time // When the current window resets
}

// RetryAfter returns how long to wait before the next request.
// Returns 0 if the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}
