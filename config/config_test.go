package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "acadbox-engine", cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, time.Local, cfg.App.Location)

	assert.Equal(t, BackendFile, cfg.Persistence.Backend)
	assert.Equal(t, "acadbox_snapshot.json", cfg.Persistence.FilePath)
	assert.True(t, cfg.Persistence.Autosave)
	assert.Equal(t, 3, cfg.Persistence.SaveAttempts)

	assert.Equal(t, DefaultHealthWeights(), cfg.Health)
	assert.True(t, cfg.Features.IsEnabled(FeatureAutoReschedule))
	assert.True(t, cfg.Features.IsEnabled(FeatureStreakDecay))
	assert.True(t, cfg.Features.IsEnabled(FeatureInsights))
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ACADBOX_ENV", "production")
	t.Setenv("ACADBOX_PERSISTENCE_BACKEND", "redis")
	t.Setenv("ACADBOX_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ACADBOX_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("ACADBOX_TIMEZONE", "UTC")
	t.Setenv("ACADBOX_AUTOSAVE", "false")
	t.Setenv("ACADBOX_FEATURE_INSIGHTS", "false")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.App.Environment)
	assert.Equal(t, BackendRedis, cfg.Persistence.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Persistence.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, time.UTC, cfg.App.Location)
	assert.False(t, cfg.Persistence.Autosave)
	assert.False(t, cfg.Features.IsEnabled(FeatureInsights))
	assert.True(t, cfg.Features.IsEnabled(FeatureStreakDecay))
}

func TestLoad_BackendRequiresURL(t *testing.T) {
	t.Setenv("ACADBOX_PERSISTENCE_BACKEND", "postgres")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_UnknownBackendRefused(t *testing.T) {
	t.Setenv("ACADBOX_PERSISTENCE_BACKEND", "mongodb")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("ACADBOX_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()

	assert.Error(t, err)
}

func TestHealthWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultHealthWeights().Validate())

	bad := HealthWeights{TaskCompletion: 0.5, FocusConsistency: 0.5, GradePerformance: 0.5, AttendancePerformance: 0.5}
	assert.Error(t, bad.Validate())

	negative := HealthWeights{TaskCompletion: -0.1, FocusConsistency: 0.4, GradePerformance: 0.4, AttendancePerformance: 0.3}
	assert.Error(t, negative.Validate())
}

func TestFeatureFlags_Set(t *testing.T) {
	ff := LoadFeatureFlags()
	require.True(t, ff.IsEnabled(FeatureAutoReschedule))

	ff.Set(FeatureAutoReschedule, false)
	assert.False(t, ff.IsEnabled(FeatureAutoReschedule))

	// Unknown flags read as off.
	assert.False(t, ff.IsEnabled("telemetry"))
}
