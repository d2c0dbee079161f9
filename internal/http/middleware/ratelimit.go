package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/rajgarments/storefront/internal/apperr"
)

// RateLimit allows requests per client IP within window and answers the
// excess with a 429 error response.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, apperr.TooManyRequestsErr)
		}),
	)
}
