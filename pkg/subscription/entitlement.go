package subscription

import "time"

// Entitlement is the derived access state used to gate features.
type Entitlement struct {
	Expired       bool
	DaysRemaining int
	Unlimited     bool // Enterprise subscriptions have no trial window to run out.
	Active        bool
}

// Evaluate computes the entitlement for a subscription at the given time.
// It is pure: persistence of a lapsed trial is Service.ReconcileExpiry's job.
//
// A missing record is treated as expired. An active enterprise record never
// expires. Everything else is governed by the trial window: the record is
// expired once the stored status says so or the window has closed.
func Evaluate(sub *Subscription, now time.Time) Entitlement {
	if sub == nil {
		return Entitlement{Expired: true}
	}

	if sub.IsEnterprise() {
		return Entitlement{Unlimited: true, Active: true}
	}

	days := daysUntil(sub.TrialEndDate, now)

	return Entitlement{
		Expired:       sub.Status == StatusExpired || days <= 0,
		DaysRemaining: max(0, days),
		Active:        sub.Status == StatusActive,
	}
}

// daysUntil returns the number of calendar days left before end, rounded up.
// A trial expiring in 30 minutes still counts as one day; the result only
// drops to zero at the exact instant the window closes.
func daysUntil(end, now time.Time) int {
	remaining := end.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
