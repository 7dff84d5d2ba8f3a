// Package middleware provides the HTTP middleware chain: the pre-parse
// content-type guard, trace-ID propagation, and request metrics.
package middleware

import (
	"net/http"

	"github.com/riverline/items-api/internal/api/shared"
)

// RequireJSONContentType is the pre-parse guard. It runs before any handler
// touches the request body: a request in an unsupported media type or charset
// is answered immediately, so the body is never decoded. Requests without a
// body-bearing method pass through untouched.
func RequireJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if guardErr := shared.ValidateContentType(r.Method, r.Header["Content-Type"]); guardErr != nil {
			shared.RespondWithAppError(w, r, guardErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}
