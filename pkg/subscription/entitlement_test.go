package subscription_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/subscription"
)

func trialSub(end time.Time) *subscription.Subscription {
	return &subscription.Subscription{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		TrialStartDate: end.Add(-subscription.TrialPeriod),
		TrialEndDate:   end,
		Status:         subscription.StatusTrial,
		PlanType:       subscription.PlanTrial,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing record is expired", func(t *testing.T) {
		t.Parallel()

		ent := subscription.Evaluate(nil, now)

		assert.True(t, ent.Expired)
		assert.Equal(t, 0, ent.DaysRemaining)
		assert.False(t, ent.Active)
		assert.False(t, ent.Unlimited)
	})

	t.Run("active enterprise never expires", func(t *testing.T) {
		t.Parallel()

		sub := trialSub(now.Add(-48 * time.Hour)) // trial window long gone
		sub.PlanType = subscription.PlanEnterprise
		sub.Status = subscription.StatusActive

		ent := subscription.Evaluate(sub, now)

		assert.False(t, ent.Expired)
		assert.True(t, ent.Unlimited)
		assert.True(t, ent.Active)
	})

	t.Run("cancelled enterprise falls back to trial window", func(t *testing.T) {
		t.Parallel()

		sub := trialSub(now.Add(-24 * time.Hour))
		sub.PlanType = subscription.PlanEnterprise
		sub.Status = subscription.StatusCancelled

		ent := subscription.Evaluate(sub, now)

		assert.True(t, ent.Expired)
		assert.False(t, ent.Unlimited)
		assert.False(t, ent.Active)
	})

	t.Run("fresh trial reports full window", func(t *testing.T) {
		t.Parallel()

		ent := subscription.Evaluate(trialSub(now.Add(subscription.TrialPeriod)), now)

		assert.False(t, ent.Expired)
		assert.Equal(t, 14, ent.DaysRemaining)
		assert.False(t, ent.Active)
	})

	t.Run("partial days round up", func(t *testing.T) {
		t.Parallel()

		ent := subscription.Evaluate(trialSub(now.Add(30*time.Minute)), now)

		assert.False(t, ent.Expired)
		assert.Equal(t, 1, ent.DaysRemaining)
	})

	t.Run("expiry flips at the exact end instant", func(t *testing.T) {
		t.Parallel()

		ent := subscription.Evaluate(trialSub(now), now)

		assert.True(t, ent.Expired)
		assert.Equal(t, 0, ent.DaysRemaining)
	})

	t.Run("days remaining never negative", func(t *testing.T) {
		t.Parallel()

		ent := subscription.Evaluate(trialSub(now.Add(-5*24*time.Hour)), now)

		assert.True(t, ent.Expired)
		assert.Equal(t, 0, ent.DaysRemaining)
	})

	t.Run("stored expired status wins over a future window", func(t *testing.T) {
		t.Parallel()

		sub := trialSub(now.Add(72 * time.Hour))
		sub.Status = subscription.StatusExpired

		ent := subscription.Evaluate(sub, now)

		assert.True(t, ent.Expired)
		assert.Equal(t, 3, ent.DaysRemaining)
	})

	t.Run("active status reported on trial plan", func(t *testing.T) {
		t.Parallel()

		sub := trialSub(now.Add(24 * time.Hour))
		sub.Status = subscription.StatusActive

		ent := subscription.Evaluate(sub, now)

		assert.True(t, ent.Active)
		assert.False(t, ent.Expired)
	})
}
