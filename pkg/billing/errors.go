package billing

import "errors"

var (
	// ErrProviderNotConfigured signals missing payment processor credentials.
	// Mapped to a service-unavailable response at the boundary, never retried.
	ErrProviderNotConfigured = errors.New("billing: payment provider not configured")

	ErrMissingEmail  = errors.New("billing: email is required")
	ErrMissingUserID = errors.New("billing: user ID is required")

	// ErrReconciliationRequired is the dangerous edge: the processor captured
	// the charge but the entitlement was not recorded. Requires manual
	// follow-up, never silent failure.
	ErrReconciliationRequired = errors.New("billing: charge captured but entitlement not recorded, manual reconciliation required")
)
