package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidStatus        = errors.New("invalid subscription status")

	ErrFailedToCreateSubscription = errors.New("failed to create subscription")
	ErrFailedToFetchSubscription  = errors.New("failed to fetch subscription")
	ErrFailedToUpdateSubscription = errors.New("failed to update subscription")
)
