package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/billing"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/subscription"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateCustomer(ctx context.Context, email, userID string) (*billing.Customer, error) {
	args := m.Called(ctx, email, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Customer), args.Error(1)
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, customerID, userID string) (*billing.CheckoutSession, error) {
	args := m.Called(ctx, customerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CheckoutSession), args.Error(1)
}

func (m *mockProvider) AttachPaymentMethod(ctx context.Context, customerID string, card billing.Card) (string, error) {
	args := m.Called(ctx, customerID, card)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) CreateSubscription(ctx context.Context, customerID, paymentMethodID string) (string, error) {
	args := m.Called(ctx, customerID, paymentMethodID)
	return args.String(0), args.Error(1)
}

type mockUpgrader struct {
	mock.Mock
}

func (m *mockUpgrader) UpgradeToEnterprise(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, paymentMethodID string) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID, customerID, subscriptionID, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

var testCard = billing.Card{Number: "4242424242424242", ExpMonth: "12", ExpYear: "2030", CVC: "123"}

func TestOrchestrator_HostedCheckout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns the processor session", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{}
		provider.On("CreateCustomer", mock.Anything, "user@example.com", userID.String()).
			Return(&billing.Customer{ID: "cus_123", Email: "user@example.com"}, nil).Once()
		provider.On("CreateCheckoutSession", mock.Anything, "cus_123", userID.String()).
			Return(&billing.CheckoutSession{ID: "cs_456", URL: "https://checkout.stripe.com/c/pay/cs_456"}, nil).Once()

		o := billing.NewOrchestrator(provider, &mockUpgrader{}, nil)
		session, err := o.HostedCheckout(ctx, userID, "user@example.com")

		require.NoError(t, err)
		assert.Equal(t, "cs_456", session.ID)
		assert.NotEmpty(t, session.URL)
		provider.AssertExpectations(t)
	})

	t.Run("customer failure stops the flow", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{}
		provider.On("CreateCustomer", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("stripe unavailable")).Once()

		o := billing.NewOrchestrator(provider, &mockUpgrader{}, nil)
		_, err := o.HostedCheckout(ctx, userID, "user@example.com")

		require.Error(t, err)
		provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrchestrator_DirectCharge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("charges and persists the upgrade once", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{}
		provider.On("CreateCustomer", mock.Anything, "user@example.com", userID.String()).
			Return(&billing.Customer{ID: "cus_123"}, nil).Once()
		provider.On("AttachPaymentMethod", mock.Anything, "cus_123", testCard).
			Return("pm_789", nil).Once()
		provider.On("CreateSubscription", mock.Anything, "cus_123", "pm_789").
			Return("sub_456", nil).Once()

		upgrader := &mockUpgrader{}
		upgrader.On("UpgradeToEnterprise", mock.Anything, userID, "cus_123", "sub_456", "pm_789").
			Return(&subscription.Subscription{UserID: userID}, nil).Once()

		o := billing.NewOrchestrator(provider, upgrader, nil)
		subscriptionID, err := o.DirectCharge(ctx, userID, "user@example.com", testCard)

		require.NoError(t, err)
		assert.Equal(t, "sub_456", subscriptionID)
		upgrader.AssertNumberOfCalls(t, "UpgradeToEnterprise", 1)
	})

	t.Run("persistence failure after the charge surfaces reconciliation", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{}
		provider.On("CreateCustomer", mock.Anything, mock.Anything, mock.Anything).
			Return(&billing.Customer{ID: "cus_123"}, nil).Once()
		provider.On("AttachPaymentMethod", mock.Anything, mock.Anything, mock.Anything).
			Return("pm_789", nil).Once()
		provider.On("CreateSubscription", mock.Anything, mock.Anything, mock.Anything).
			Return("sub_456", nil).Once()

		upgrader := &mockUpgrader{}
		upgrader.On("UpgradeToEnterprise", mock.Anything, userID, "cus_123", "sub_456", "pm_789").
			Return(nil, errors.New("connection reset")).Once()

		o := billing.NewOrchestrator(provider, upgrader, nil)
		subscriptionID, err := o.DirectCharge(ctx, userID, "user@example.com", testCard)

		assert.ErrorIs(t, err, billing.ErrReconciliationRequired)
		assert.Equal(t, "sub_456", subscriptionID, "subscription ID must survive for manual reconciliation")
	})

	t.Run("attach failure means no charge and no upgrade", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{}
		provider.On("CreateCustomer", mock.Anything, mock.Anything, mock.Anything).
			Return(&billing.Customer{ID: "cus_123"}, nil).Once()
		provider.On("AttachPaymentMethod", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("card declined")).Once()

		upgrader := &mockUpgrader{}

		o := billing.NewOrchestrator(provider, upgrader, nil)
		_, err := o.DirectCharge(ctx, userID, "user@example.com", testCard)

		require.Error(t, err)
		assert.NotErrorIs(t, err, billing.ErrReconciliationRequired)
		provider.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything, mock.Anything)
		upgrader.AssertNotCalled(t, "UpgradeToEnterprise",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
