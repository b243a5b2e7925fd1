package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and local development. It
// enforces the same one-record-per-user rule as the PostgreSQL store.
type MemStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

// NewMemStore creates an empty in-memory subscription store.
func NewMemStore() *MemStore {
	return &MemStore{
		subs: make(map[uuid.UUID]*Subscription),
	}
}

func (s *MemStore) Create(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create-if-absent: a second create leaves the existing record untouched.
	if _, exists := s.subs[sub.UserID]; exists {
		return nil
	}

	cp := *sub
	s.subs[sub.UserID] = &cp
	return nil
}

func (s *MemStore) GetByUser(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, exists := s.subs[userID]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}

	cp := *sub
	return &cp, nil
}

func (s *MemStore) UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, exists := s.subs[userID]
	if !exists {
		return ErrSubscriptionNotFound
	}

	sub.Status = status
	sub.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemStore) UpgradeToEnterprise(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, paymentMethodID string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, exists := s.subs[userID]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}

	sub.PlanType = PlanEnterprise
	sub.Status = StatusActive
	sub.StripeCustomerID = &customerID
	sub.StripeSubscriptionID = &subscriptionID
	sub.StripePaymentMethodID = &paymentMethodID
	sub.UpdatedAt = time.Now().UTC()

	cp := *sub
	return &cp, nil
}
