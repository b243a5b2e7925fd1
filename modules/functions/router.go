package functions

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router mounts the edge function endpoints. The rate limit middleware is
// supplied by the caller and applied to the domain verification endpoint
// only; checkout is protected upstream by authentication.
func Router(h *Handler, verifyRateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Post("/create-checkout", h.CreateCheckout)
	r.Get("/subscription-status", h.SubscriptionStatus)

	if verifyRateLimit != nil {
		r.With(verifyRateLimit).Post("/verify-email-domain", h.VerifyEmailDomain)
	} else {
		r.Post("/verify-email-domain", h.VerifyEmailDomain)
	}

	return r
}
