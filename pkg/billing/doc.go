// Package billing is the boundary to the payment processor. The Orchestrator
// drives checkout in two variants: a hosted redirect where the processor
// collects payment, and a direct server-side charge that records the upgrade
// synchronously. StripeProvider implements the processor boundary over
// Stripe's form-encoded REST API.
package billing
