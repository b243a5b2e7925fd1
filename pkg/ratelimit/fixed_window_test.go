package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/ratelimit"
)

func TestNewFixedWindow_Validation(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()

	_, err := ratelimit.NewFixedWindow(nil, 5, time.Minute)
	assert.ErrorIs(t, err, ratelimit.ErrStoreRequired)

	_, err = ratelimit.NewFixedWindow(store, 0, time.Minute)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewFixedWindow(store, 5, 0)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidWindow)
}

func TestFixedWindow_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sixth request in window is rejected", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(func() time.Time { return now }))
		limiter, err := ratelimit.NewFixedWindow(store, 5, time.Minute)
		require.NoError(t, err)

		for i := range 5 {
			result, err := limiter.Allow(ctx, "email-verify:203.0.113.7")
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should pass", i+1)
			assert.Equal(t, 5, result.Limit)
			assert.Equal(t, 4-i, result.Remaining)
		}

		result, err := limiter.Allow(ctx, "email-verify:203.0.113.7")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.LessOrEqual(t, result.RetryAfter(), time.Minute)
		assert.Greater(t, result.RetryAfter(), time.Duration(0))
	})

	t.Run("window reset restarts the count", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(func() time.Time { return now }))
		limiter, err := ratelimit.NewFixedWindow(store, 5, time.Minute)
		require.NoError(t, err)

		for range 6 {
			_, err := limiter.Allow(ctx, "k")
			require.NoError(t, err)
		}

		// Advance past the window's reset time.
		now = now.Add(61 * time.Second)

		result, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 4, result.Remaining) // count restarted at 1
	})

	t.Run("keys are isolated", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		limiter, err := ratelimit.NewFixedWindow(store, 1, time.Minute)
		require.NoError(t, err)

		first, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		second, err := limiter.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, second.Allowed)
	})

	t.Run("empty key is an error", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimit.NewFixedWindow(ratelimit.NewMemoryStore(), 5, time.Minute)
		require.NoError(t, err)

		_, err = limiter.Allow(ctx, "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})
}

func TestMemoryStore_SweepsExpiredAtThreshold(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	store := ratelimit.NewMemoryStore(
		ratelimit.WithMaxEntries(2),
		ratelimit.WithClock(func() time.Time { return now }),
	)

	_, _, err := store.Incr(ctx, "a", time.Minute)
	require.NoError(t, err)
	_, _, err = store.Incr(ctx, "b", time.Minute)
	require.NoError(t, err)

	// Both windows lapse; the next insert trips the threshold sweep.
	now = now.Add(2 * time.Minute)

	_, _, err = store.Incr(ctx, "c", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
}
