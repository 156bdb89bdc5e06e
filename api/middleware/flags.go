// ABOUTME: Feature flag middleware for API endpoints
// ABOUTME: Attaches the flag manager to each request context

package middleware

import (
	"net/http"

	"headlines-api/pkg/featureflags"
)

// FeatureFlagsMiddleware makes manager available through featureflags.FromContext
func FeatureFlagsMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), manager)))
		})
	}
}
