package functions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/subscription"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// subscriptionDTO is the wire shape of a subscription record.
type subscriptionDTO struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"userId"`
	TrialStartDate        time.Time `json:"trialStartDate"`
	TrialEndDate          time.Time `json:"trialEndDate"`
	SubscriptionStatus    string    `json:"subscriptionStatus"`
	PlanType              string    `json:"planType"`
	StripeCustomerID      *string   `json:"stripeCustomerId"`
	StripeSubscriptionID  *string   `json:"stripeSubscriptionId"`
	StripePaymentMethodID *string   `json:"stripePaymentMethodId"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func newSubscriptionDTO(sub *subscription.Subscription) subscriptionDTO {
	return subscriptionDTO{
		ID:                    sub.ID.String(),
		UserID:                sub.UserID.String(),
		TrialStartDate:        sub.TrialStartDate,
		TrialEndDate:          sub.TrialEndDate,
		SubscriptionStatus:    string(sub.Status),
		PlanType:              string(sub.PlanType),
		StripeCustomerID:      sub.StripeCustomerID,
		StripeSubscriptionID:  sub.StripeSubscriptionID,
		StripePaymentMethodID: sub.StripePaymentMethodID,
		CreatedAt:             sub.CreatedAt,
		UpdatedAt:             sub.UpdatedAt,
	}
}
