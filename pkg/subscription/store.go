package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence boundary for subscription records. Absence of a
// record is reported as ErrSubscriptionNotFound, distinct from infrastructure
// failures, so callers can tell "no subscription yet" from "store unreachable".
type Store interface {
	// Create inserts the record unless the user already has one. UserID is
	// unique at the data layer, so concurrent first sign-ins cannot produce
	// two trial rows: the losing insert is a no-op and the caller re-fetches.
	Create(ctx context.Context, sub *Subscription) error

	// GetByUser returns the user's record or ErrSubscriptionNotFound.
	GetByUser(ctx context.Context, userID uuid.UUID) (*Subscription, error)

	// UpdateStatus sets the subscription status and bumps UpdatedAt.
	UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) error

	// UpgradeToEnterprise flips the record to the enterprise plan with active
	// status and records the payment processor references in one update.
	UpgradeToEnterprise(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, paymentMethodID string) (*Subscription, error)
}
