package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Enterprise plan pricing as presented on the marketing site: $299/month.
const (
	enterprisePlanName        = "Enterprise Plan"
	enterprisePlanDescription = "Full access to all features"
	enterpriseUnitAmountCents = "29900"
	enterpriseCurrency        = "usd"
	enterpriseInterval        = "month"
)

// StripeConfig holds payment processor credentials and redirect targets.
// An empty secret key is not a startup error: checkout is simply reported
// unavailable until the key is provisioned.
type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	AppURL    string `env:"APP_URL" envDefault:"http://localhost:5173"`
}

// StripeProvider implements Provider against the Stripe REST API with
// form-encoded requests. Stripe errors are decoded and surfaced wrapped, so
// the boundary can log the detail while showing callers a generic message.
type StripeProvider struct {
	secretKey  string
	appURL     string
	baseURL    string
	httpClient *http.Client
}

// StripeOption configures a StripeProvider.
type StripeOption func(*StripeProvider)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) StripeOption {
	return func(p *StripeProvider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithBaseURL overrides the Stripe API base URL. Intended for tests.
func WithBaseURL(u string) StripeOption {
	return func(p *StripeProvider) {
		if u != "" {
			p.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// NewStripeProvider creates a Stripe-backed payment provider.
// Returns ErrProviderNotConfigured when the secret key is absent.
func NewStripeProvider(cfg StripeConfig, opts ...StripeOption) (*StripeProvider, error) {
	if cfg.SecretKey == "" {
		return nil, ErrProviderNotConfigured
	}

	p := &StripeProvider{
		secretKey: cfg.SecretKey,
		appURL:    strings.TrimSuffix(cfg.AppURL, "/"),
		baseURL:   "https://api.stripe.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, email, userID string) (*Customer, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if userID == "" {
		return nil, ErrMissingUserID
	}

	params := url.Values{}
	params.Set("email", email)
	params.Set("metadata[user_id]", userID)

	obj, err := p.postForm(ctx, "/v1/customers", params)
	if err != nil {
		return nil, err
	}

	return &Customer{ID: obj.ID, Email: email}, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, customerID, userID string) (*CheckoutSession, error) {
	params := url.Values{}
	params.Set("success_url", p.appURL+"/dashboard?payment=success")
	params.Set("cancel_url", p.appURL+"/upgrade?payment=canceled")
	params.Set("customer", customerID)
	params.Set("mode", "subscription")
	params.Set("line_items[0][price_data][currency]", enterpriseCurrency)
	params.Set("line_items[0][price_data][product_data][name]", enterprisePlanName)
	params.Set("line_items[0][price_data][product_data][description]", enterprisePlanDescription)
	params.Set("line_items[0][price_data][recurring][interval]", enterpriseInterval)
	params.Set("line_items[0][price_data][unit_amount]", enterpriseUnitAmountCents)
	params.Set("line_items[0][quantity]", "1")
	params.Set("payment_method_types[0]", "card")
	params.Set("client_reference_id", userID)
	params.Set("metadata[user_id]", userID)

	obj, err := p.postForm(ctx, "/v1/checkout/sessions", params)
	if err != nil {
		return nil, err
	}
	if obj.URL == "" {
		return nil, errors.New("billing: no checkout URL returned from stripe")
	}

	return &CheckoutSession{ID: obj.ID, URL: obj.URL}, nil
}

func (p *StripeProvider) AttachPaymentMethod(ctx context.Context, customerID string, card Card) (string, error) {
	params := url.Values{}
	params.Set("type", "card")
	params.Set("card[number]", card.Number)
	params.Set("card[exp_month]", card.ExpMonth)
	params.Set("card[exp_year]", card.ExpYear)
	params.Set("card[cvc]", card.CVC)

	obj, err := p.postForm(ctx, "/v1/payment_methods", params)
	if err != nil {
		return "", err
	}

	attach := url.Values{}
	attach.Set("customer", customerID)
	if _, err := p.postForm(ctx, "/v1/payment_methods/"+obj.ID+"/attach", attach); err != nil {
		return "", err
	}

	return obj.ID, nil
}

func (p *StripeProvider) CreateSubscription(ctx context.Context, customerID, paymentMethodID string) (string, error) {
	params := url.Values{}
	params.Set("customer", customerID)
	params.Set("default_payment_method", paymentMethodID)
	params.Set("items[0][price_data][currency]", enterpriseCurrency)
	params.Set("items[0][price_data][product][name]", enterprisePlanName)
	params.Set("items[0][price_data][recurring][interval]", enterpriseInterval)
	params.Set("items[0][price_data][unit_amount]", enterpriseUnitAmountCents)

	obj, err := p.postForm(ctx, "/v1/subscriptions", params)
	if err != nil {
		return "", err
	}

	return obj.ID, nil
}

// stripeObject covers the response fields this provider reads. Stripe embeds
// errors in the body with a 4xx status rather than a distinct shape.
type stripeObject struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *StripeProvider) postForm(ctx context.Context, path string, params url.Values) (*stripeObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("billing: failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("billing: stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	var obj stripeObject
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return nil, fmt.Errorf("billing: failed to decode stripe response: %w", err)
	}

	if obj.Error != nil {
		return nil, fmt.Errorf("billing: stripe error: %s", obj.Error.Message)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("billing: stripe returned status %d", resp.StatusCode)
	}

	return &obj, nil
}
