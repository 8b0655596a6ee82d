package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages runtime feature toggles for the engine.
// Unlike persisted Settings, flags are read once from the environment and
// never change for the process lifetime.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]bool
}

// Predefined feature flag names.
const (
	// FeatureAutoReschedule moves overdue pending tasks to tomorrow on boot.
	FeatureAutoReschedule = "auto_reschedule"

	// FeatureStreakDecay runs the load-time streak decay check.
	FeatureStreakDecay = "streak_decay"

	// FeatureInsights enables the insight generator queries.
	FeatureInsights = "insights"
)

// defaultFeatures lists every known flag with its default state.
var defaultFeatures = map[string]bool{
	FeatureAutoReschedule: true,
	FeatureStreakDecay:    true,
	FeatureInsights:       true,
}

// LoadFeatureFlags builds the flag set from defaults plus environment
// overrides of the form ACADBOX_FEATURE_<NAME>=true|false.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]bool, len(defaultFeatures))}
	for name, enabled := range defaultFeatures {
		key := "ACADBOX_FEATURE_" + strings.ToUpper(name)
		if v, ok := os.LookupEnv(key); ok {
			if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				ff.features[name] = parsed
				continue
			}
		}
		ff.features[name] = enabled
	}
	return ff
}

// IsEnabled reports whether the named feature is on.
// Unknown feature names are off.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()
	return ff.features[name]
}

// Set overrides a flag at runtime. Intended for tests.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.features[name] = enabled
}
