package featureflags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvManager_Defaults(t *testing.T) {
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, SavedEnabled))
	assert.True(t, manager.IsEnabled(ctx, RateLimitEnabled))
	assert.False(t, manager.IsEnabled(ctx, ProxyEnabled))
	assert.False(t, manager.IsEnabled(ctx, "unknown_flag"))
}

func TestEnvManager_EnvironmentValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"TRUE uppercase", "TRUE", true},
		{"1 numeric", "1", true},
		{"enabled", "enabled", true},
		{"on", "on", true},
		{"false", "false", false},
		{"0", "0", false},
		{"DISABLED", "DISABLED", false},
		{"empty uses default", "", false},
		{"unrecognised uses default", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FEATURE_PROXY_ENABLED", tt.value)

			manager := NewEnvManager("TEST_FEATURE_")
			assert.Equal(t, tt.expected, manager.IsEnabled(context.Background(), ProxyEnabled))
		})
	}
}

func TestEnvManager_DisableDefaultOnFlag(t *testing.T) {
	t.Setenv("FEATURE_READER_ENABLED", "false")

	manager := NewEnvManager("")
	assert.False(t, manager.IsEnabled(context.Background(), ReaderEnabled))
}

func TestEnvManager_SetEnabledOverridesEnvironment(t *testing.T) {
	t.Setenv("TEST_FEATURE_SAVED_ENABLED", "true")
	manager := NewEnvManager("TEST_FEATURE_")

	manager.SetEnabled(SavedEnabled, false)

	assert.False(t, manager.IsEnabled(context.Background(), SavedEnabled))
}

func TestEnvManager_GetAllFlags(t *testing.T) {
	t.Setenv("TEST_FEATURE_PROXY_ENABLED", "1")
	manager := NewEnvManager("TEST_FEATURE_")

	flags := manager.GetAllFlags()

	assert.Len(t, flags, len(Defaults))
	assert.True(t, flags[ProxyEnabled])
	assert.True(t, flags[AnalyticsEnabled])
}

func TestStaticManager(t *testing.T) {
	source := map[FeatureFlag]bool{ReaderEnabled: true}
	manager := NewStaticManager(source)
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, ReaderEnabled))
	assert.False(t, manager.IsEnabled(ctx, SavedEnabled))

	manager.SetEnabled(SavedEnabled, true)
	assert.True(t, manager.IsEnabled(ctx, SavedEnabled))
	assert.False(t, source[SavedEnabled], "the input map is copied")

	all := manager.GetAllFlags()
	all[ReaderEnabled] = false
	assert.True(t, manager.IsEnabled(ctx, ReaderEnabled), "returned map is a copy")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.True(t, IsEnabled(ctx, SavedEnabled), "defaults apply without a manager")
	assert.False(t, IsEnabled(ctx, ProxyEnabled))

	manager := NewStaticManager(map[FeatureFlag]bool{ProxyEnabled: true})
	ctx = WithManager(ctx, manager)

	assert.Same(t, manager, FromContext(ctx))
	assert.True(t, IsEnabled(ctx, ProxyEnabled))
	assert.False(t, IsEnabled(ctx, SavedEnabled))
}
