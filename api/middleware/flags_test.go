package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"headlines-api/pkg/featureflags"

	"github.com/stretchr/testify/assert"
)

func TestFeatureFlagsMiddleware_AttachesManager(t *testing.T) {
	manager := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.AnalyticsEnabled: false,
		featureflags.ProxyEnabled:     true,
	})

	var analytics, proxy bool
	handler := FeatureFlagsMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		analytics = featureflags.IsEnabled(r.Context(), featureflags.AnalyticsEnabled)
		proxy = featureflags.IsEnabled(r.Context(), featureflags.ProxyEnabled)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/headlines", nil))

	assert.False(t, analytics)
	assert.True(t, proxy)
}

func TestFeatureFlags_DefaultsWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)

	assert.True(t, featureflags.IsEnabled(req.Context(), featureflags.AnalyticsEnabled))
	assert.False(t, featureflags.IsEnabled(req.Context(), featureflags.ProxyEnabled))
}
