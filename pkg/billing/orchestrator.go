package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/subscription"
)

// SubscriptionUpgrader is the slice of the subscription service the checkout
// flow needs: recording a paid upgrade.
type SubscriptionUpgrader interface {
	UpgradeToEnterprise(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, paymentMethodID string) (*subscription.Subscription, error)
}

// Orchestrator turns a successful external payment authorization into a
// persisted upgrade. It is the only writer permitted to set the enterprise
// plan.
type Orchestrator struct {
	provider Provider
	subs     SubscriptionUpgrader
	log      *slog.Logger
}

// NewOrchestrator creates a checkout orchestrator.
// Panics on nil dependencies to fail fast during initialization.
func NewOrchestrator(provider Provider, subs SubscriptionUpgrader, log *slog.Logger) *Orchestrator {
	if provider == nil {
		panic("billing: Provider is required")
	}
	if subs == nil {
		panic("billing: SubscriptionUpgrader is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		provider: provider,
		subs:     subs,
		log:      log,
	}
}

// HostedCheckout creates a processor customer and a hosted checkout session.
// Payment collection and confirmation happen out-of-band on the processor's
// page; the upgrade is persisted later, once payment is confirmed.
func (o *Orchestrator) HostedCheckout(ctx context.Context, userID uuid.UUID, email string) (*CheckoutSession, error) {
	customer, err := o.provider.CreateCustomer(ctx, email, userID.String())
	if err != nil {
		return nil, err
	}

	session, err := o.provider.CreateCheckoutSession(ctx, customer.ID, userID.String())
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "created hosted checkout session",
		"user_id", userID, "session_id", session.ID)
	return session, nil
}

// DirectCharge collects payment server-side: customer, payment method,
// subscription, then the persisted upgrade, synchronously.
//
// A persistence failure after CreateSubscription succeeds means money was
// captured without the entitlement being recorded. That case returns
// ErrReconciliationRequired with the subscription ID so support can
// reconcile manually; it must never be swallowed.
func (o *Orchestrator) DirectCharge(ctx context.Context, userID uuid.UUID, email string, card Card) (string, error) {
	customer, err := o.provider.CreateCustomer(ctx, email, userID.String())
	if err != nil {
		return "", err
	}

	paymentMethodID, err := o.provider.AttachPaymentMethod(ctx, customer.ID, card)
	if err != nil {
		return "", err
	}

	subscriptionID, err := o.provider.CreateSubscription(ctx, customer.ID, paymentMethodID)
	if err != nil {
		return "", err
	}

	// The charge is live from here on.
	if _, err := o.subs.UpgradeToEnterprise(ctx, userID, customer.ID, subscriptionID, paymentMethodID); err != nil {
		o.log.ErrorContext(ctx, "charge captured but upgrade not persisted",
			"user_id", userID,
			"stripe_customer_id", customer.ID,
			"stripe_subscription_id", subscriptionID,
			"error", err)
		return subscriptionID, errors.Join(ErrReconciliationRequired, err)
	}

	o.log.InfoContext(ctx, "direct charge completed",
		"user_id", userID, "stripe_subscription_id", subscriptionID)
	return subscriptionID, nil
}
