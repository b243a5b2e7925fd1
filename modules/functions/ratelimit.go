package functions

import (
	"net/http"

	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/clientip"
	"github.com/Ron-Web-Dotcom/Marketing-TemplateAI/pkg/ratelimit"
)

// verifyKeyPrefix namespaces the verification endpoint's counters in shared
// stores such as Redis.
const verifyKeyPrefix = "email-verify:"

// VerifyRateLimit builds the rate limit middleware for the domain
// verification endpoint: keyed by client IP, responding with this API's
// JSON error shape when throttled.
func VerifyRateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	keyFunc := func(r *http.Request) string {
		ip := clientip.GetIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return verifyKeyPrefix + ip
	}

	return ratelimit.Middleware(limiter, keyFunc,
		ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, result *ratelimit.Result) {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"isValid": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
		}),
	)
}
