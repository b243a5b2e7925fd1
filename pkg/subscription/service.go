package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service manages the subscription lifecycle on top of a Store.
//
// Read paths fail open: a store failure degrades to a nil record (the UI
// shows "no subscription" instead of crashing). Plain write paths fail
// silent with a log entry. The one exception is UpgradeToEnterprise, whose
// error the checkout flow must check because money has changed hands.
type Service struct {
	store       Store
	log         *slog.Logger
	now         func() time.Time
	trialPeriod time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for degraded-path reporting.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTrialPeriod overrides the default 14-day trial window.
func WithTrialPeriod(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.trialPeriod = d
		}
	}
}

// NewService creates a subscription Service.
// Panics on a nil store to fail fast during initialization.
func NewService(store Store, opts ...Option) *Service {
	if store == nil {
		panic("subscription: Store is required")
	}

	s := &Service{
		store:       store,
		log:         slog.New(slog.DiscardHandler),
		now:         time.Now,
		trialPeriod: TrialPeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTrial provisions a trial subscription for the user. Returns nil on
// persistence failure; callers must treat nil as "no subscription state
// available" and re-fetch rather than assume creation succeeded.
//
// Creation is create-if-absent: when a concurrent sign-in wins the insert,
// the existing record is returned and its trial window is left untouched.
func (s *Service) CreateTrial(ctx context.Context, userID uuid.UUID) *Subscription {
	now := s.now().UTC()
	sub := &Subscription{
		ID:             uuid.New(),
		UserID:         userID,
		TrialStartDate: now,
		TrialEndDate:   now.Add(s.trialPeriod),
		Status:         StatusTrial,
		PlanType:       PlanTrial,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "failed to create trial subscription",
			"user_id", userID, "error", err)
		return nil
	}

	// Re-fetch so a lost insert race still yields the winning record.
	created, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to fetch subscription after create",
			"user_id", userID, "error", err)
		return nil
	}
	return created
}

// GetByUser returns the user's subscription, or nil when none exists or the
// store is unreachable. Only the latter is logged.
func (s *Service) GetByUser(ctx context.Context, userID uuid.UUID) *Subscription {
	sub, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSubscriptionNotFound) {
			s.log.ErrorContext(ctx, "failed to fetch subscription",
				"user_id", userID, "error", err)
		}
		return nil
	}
	return sub
}

// EnsureTrial returns the user's subscription, provisioning a trial when the
// user has none. This is the sign-in bootstrap path.
func (s *Service) EnsureTrial(ctx context.Context, userID uuid.UUID) *Subscription {
	sub, err := s.store.GetByUser(ctx, userID)
	if err == nil {
		return sub
	}
	if !errors.Is(err, ErrSubscriptionNotFound) {
		s.log.ErrorContext(ctx, "failed to fetch subscription",
			"user_id", userID, "error", err)
		return nil
	}
	return s.CreateTrial(ctx, userID)
}

// UpdateStatus sets the subscription status. Fails silent with a log entry.
func (s *Service) UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) {
	if !status.Valid() {
		s.log.ErrorContext(ctx, "refusing to set invalid subscription status",
			"user_id", userID, "status", string(status))
		return
	}
	if err := s.store.UpdateStatus(ctx, userID, status); err != nil {
		s.log.ErrorContext(ctx, "failed to update subscription status",
			"user_id", userID, "status", string(status), "error", err)
	}
}

// Cancel marks the user's subscription cancelled.
func (s *Service) Cancel(ctx context.Context, userID uuid.UUID) {
	s.UpdateStatus(ctx, userID, StatusCancelled)
}

// ReconcileExpiry persists the trial-to-expired transition once the trial
// window has closed. Only trial records are touched: a cancelled or already
// expired record is left as is. Idempotent, so concurrent reconciles for the
// same user are harmless last-write-wins on the same target state.
func (s *Service) ReconcileExpiry(ctx context.Context, userID uuid.UUID) {
	sub, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrSubscriptionNotFound) {
			s.log.ErrorContext(ctx, "failed to fetch subscription for expiry reconcile",
				"user_id", userID, "error", err)
		}
		return
	}

	if sub.Status != StatusTrial {
		return
	}

	if Evaluate(sub, s.now()).Expired {
		if err := s.store.UpdateStatus(ctx, userID, StatusExpired); err != nil {
			s.log.ErrorContext(ctx, "failed to mark trial expired",
				"user_id", userID, "error", err)
		}
	}
}

// Status returns the user's record together with its entitlement. When the
// stored row still says trial but the window has closed, reconciliation is
// scheduled in the background and the result returned without waiting, so
// the row may lag the reported state by one rendering cycle.
func (s *Service) Status(ctx context.Context, userID uuid.UUID) (*Subscription, Entitlement) {
	sub := s.GetByUser(ctx, userID)
	return sub, s.entitle(ctx, sub, userID)
}

// EnsureStatus is Status with trial provisioning for first sign-ins.
func (s *Service) EnsureStatus(ctx context.Context, userID uuid.UUID) (*Subscription, Entitlement) {
	sub := s.EnsureTrial(ctx, userID)
	return sub, s.entitle(ctx, sub, userID)
}

func (s *Service) entitle(ctx context.Context, sub *Subscription, userID uuid.UUID) Entitlement {
	ent := Evaluate(sub, s.now())
	if sub != nil && ent.Expired && sub.Status == StatusTrial {
		go s.ReconcileExpiry(context.WithoutCancel(ctx), userID)
	}
	return ent
}

// UpgradeToEnterprise records a successful payment: enterprise plan, active
// status, and the processor references, atomically from the caller's view.
// Unlike the other write paths this returns the error, because the checkout
// flow must know whether the entitlement was recorded after a charge.
func (s *Service) UpgradeToEnterprise(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, paymentMethodID string) (*Subscription, error) {
	sub, err := s.store.UpgradeToEnterprise(ctx, userID, customerID, subscriptionID, paymentMethodID)
	if err != nil {
		return nil, errors.Join(ErrFailedToUpdateSubscription, err)
	}
	return sub, nil
}
