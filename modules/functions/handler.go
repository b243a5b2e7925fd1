package functions

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/billing"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/emailverify"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/subscription"
)

// SubscriptionService is the slice of the subscription service the edge needs.
type SubscriptionService interface {
	EnsureStatus(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, subscription.Entitlement)
}

// CheckoutService drives the two checkout variants.
type CheckoutService interface {
	HostedCheckout(ctx context.Context, userID uuid.UUID, email string) (*billing.CheckoutSession, error)
	DirectCharge(ctx context.Context, userID uuid.UUID, email string, card billing.Card) (string, error)
}

// DomainVerifier validates email domains.
type DomainVerifier interface {
	Verify(ctx context.Context, domain string) emailverify.Result
}

// Handler serves the edge function endpoints. It is the only layer that
// produces HTTP-level error responses; the services underneath return
// normalized errors or degrade internally.
type Handler struct {
	subs     SubscriptionService
	checkout CheckoutService // nil when the payment provider is not configured
	verifier DomainVerifier
	log      *slog.Logger
}

// NewHandler creates the edge handler. A nil checkout service is allowed and
// makes the checkout endpoint answer service-unavailable.
func NewHandler(subs SubscriptionService, checkout CheckoutService, verifier DomainVerifier, log *slog.Logger) *Handler {
	if subs == nil {
		panic("functions: SubscriptionService is required")
	}
	if verifier == nil {
		panic("functions: DomainVerifier is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		subs:     subs,
		checkout: checkout,
		verifier: verifier,
		log:      log,
	}
}

type checkoutRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`

	// Card fields are present only in the direct-charge variant.
	CardNumber   string `json:"cardNumber"`
	CardExpMonth string `json:"cardExpMonth"`
	CardExpYear  string `json:"cardExpYear"`
	CardCVC      string `json:"cardCvc"`
}

// CreateCheckout handles POST /create-checkout. Without card fields it
// returns a hosted checkout URL; with them it charges directly and persists
// the upgrade before responding.
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.checkout == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": "Payment processing is currently unavailable. Please contact support.",
		})
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Missing required fields",
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Invalid user ID",
		})
		return
	}

	if req.CardNumber != "" {
		card := billing.Card{
			Number:   req.CardNumber,
			ExpMonth: req.CardExpMonth,
			ExpYear:  req.CardExpYear,
			CVC:      req.CardCVC,
		}

		subscriptionID, err := h.checkout.DirectCharge(ctx, userID, req.Email, card)
		if err != nil {
			if errors.Is(err, billing.ErrReconciliationRequired) {
				// Money captured, entitlement unrecorded. The detail is
				// already logged by the orchestrator; the client gets a
				// server error, not a payment error.
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"error": "Payment succeeded but account update failed. Please contact support.",
				})
				return
			}
			h.log.ErrorContext(ctx, "direct charge failed", "user_id", userID, "error", err)
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": "Payment processing failed. Please try again.",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"subscriptionId": subscriptionID,
		})
		return
	}

	session, err := h.checkout.HostedCheckout(ctx, userID, req.Email)
	if err != nil {
		h.log.ErrorContext(ctx, "hosted checkout failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Payment processing failed. Please try again.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"sessionId":   session.ID,
		"checkoutUrl": session.URL,
	})
}

type verifyRequest struct {
	Domain string `json:"domain"`
}

// VerifyEmailDomain handles POST /verify-email-domain. Rate limiting and its
// headers are applied by middleware before the request gets here.
func (h *Handler) VerifyEmailDomain(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Domain == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"isValid": false,
			"error":   "Domain is required",
		})
		return
	}

	result := h.verifier.Verify(r.Context(), req.Domain)

	writeJSON(w, http.StatusOK, map[string]any{
		"isValid": result.Valid,
		"reason":  result.Reason,
	})
}

// SubscriptionStatus handles GET /subscription-status. It provisions a trial
// for first-time users and returns the record with its derived entitlement,
// mirroring what the dashboard needs at session start.
func (h *Handler) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Invalid user ID",
		})
		return
	}

	sub, ent := h.subs.EnsureStatus(r.Context(), userID)

	resp := map[string]any{
		"isExpired":     ent.Expired,
		"daysRemaining": ent.DaysRemaining,
		"unlimited":     ent.Unlimited,
		"isActive":      ent.Active,
	}
	if sub != nil {
		resp["subscription"] = newSubscriptionDTO(sub)
	}

	writeJSON(w, http.StatusOK, resp)
}
