package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a subscription.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// PlanType represents the plan a subscription is on.
type PlanType string

const (
	PlanTrial      PlanType = "trial"
	PlanEnterprise PlanType = "enterprise"
)

// TrialPeriod is the length of the trial window granted at sign-up.
// TrialEndDate is fixed at creation and never extended or shortened.
const TrialPeriod = 14 * 24 * time.Hour

// Subscription is a user's subscription record. Each user has exactly one,
// created at first sign-in and never hard-deleted.
type Subscription struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TrialStartDate time.Time
	TrialEndDate   time.Time
	Status         Status
	PlanType       PlanType

	// Payment processor references, populated only on upgrade. An enterprise
	// plan always carries all three.
	StripeCustomerID      *string
	StripeSubscriptionID  *string
	StripePaymentMethodID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEnterprise reports whether the record is a paid-up enterprise subscription.
func (s *Subscription) IsEnterprise() bool {
	return s.PlanType == PlanEnterprise && s.Status == StatusActive
}
