package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on PostgreSQL. The user_subscriptions table
// carries a UNIQUE constraint on user_id, which is what makes Create safe
// against concurrent first sign-ins.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed subscription store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("subscription: pgxpool is required")
	}
	return &PGStore{pool: pool}
}

const subscriptionColumns = `id, user_id, trial_start_date, trial_end_date,
	subscription_status, plan_type,
	stripe_customer_id, stripe_subscription_id, stripe_payment_method_id,
	created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, sub *Subscription) error {
	// ON CONFLICT DO NOTHING: the losing side of a double-submit is a no-op
	// and must not touch the existing record's trial window.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_subscriptions (
			id, user_id, trial_start_date, trial_end_date,
			subscription_status, plan_type, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING`,
		sub.ID, sub.UserID, sub.TrialStartDate, sub.TrialEndDate,
		string(sub.Status), string(sub.PlanType), sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrFailedToCreateSubscription, err)
	}
	return nil
}

func (s *PGStore) GetByUser(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+subscriptionColumns+`
		FROM user_subscriptions
		WHERE user_id = $1`,
		userID,
	)

	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrFailedToFetchSubscription, err)
	}
	return sub, nil
}

func (s *PGStore) UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE user_subscriptions
		SET subscription_status = $2, updated_at = now()
		WHERE user_id = $1`,
		userID, string(status),
	)
	if err != nil {
		return errors.Join(ErrFailedToUpdateSubscription, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (s *PGStore) UpgradeToEnterprise(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, paymentMethodID string) (*Subscription, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE user_subscriptions
		SET plan_type = $2,
			subscription_status = $3,
			stripe_customer_id = $4,
			stripe_subscription_id = $5,
			stripe_payment_method_id = $6,
			updated_at = now()
		WHERE user_id = $1
		RETURNING `+subscriptionColumns,
		userID, string(PlanEnterprise), string(StatusActive),
		customerID, subscriptionID, paymentMethodID,
	)

	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, errors.Join(ErrFailedToUpdateSubscription, err)
	}
	return sub, nil
}

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var (
		sub      Subscription
		status   string
		planType string
	)
	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.TrialStartDate, &sub.TrialEndDate,
		&status, &planType,
		&sub.StripeCustomerID, &sub.StripeSubscriptionID, &sub.StripePaymentMethodID,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.Status = Status(status)
	sub.PlanType = PlanType(planType)
	return &sub, nil
}
