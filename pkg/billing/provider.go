package billing

import "context"

// Card carries raw card details for the direct-charge checkout variant.
type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// Customer is the processor's customer object.
type Customer struct {
	ID    string
	Email string
}

// CheckoutSession is a hosted checkout session: the processor collects
// payment at URL and confirms success out-of-band.
type CheckoutSession struct {
	ID  string
	URL string
}

// Provider is the boundary to the payment processor. Implementations own all
// processor-specific wire details; callers see normalized types and errors.
type Provider interface {
	// CreateCustomer creates or resolves a processor customer for the email.
	// The user ID travels in metadata so webhooks can be correlated back.
	CreateCustomer(ctx context.Context, email, userID string) (*Customer, error)

	// CreateCheckoutSession creates a hosted checkout page for the
	// enterprise plan; payment confirmation arrives asynchronously.
	CreateCheckoutSession(ctx context.Context, customerID, userID string) (*CheckoutSession, error)

	// AttachPaymentMethod tokenizes the card and attaches it to the
	// customer, returning the payment method ID.
	AttachPaymentMethod(ctx context.Context, customerID string, card Card) (string, error)

	// CreateSubscription starts the enterprise subscription against an
	// attached payment method and returns the processor's subscription ID.
	// Money is considered captured once this returns without error.
	CreateSubscription(ctx context.Context, customerID, paymentMethodID string) (string, error)
}
