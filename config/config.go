// Package config loads AcadBox engine configuration from environment
// variables. Defaults are chosen so the engine runs with no environment at
// all: file-backed persistence next to the binary and the documented health
// weights.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Persistence backends recognized by the snapshot boundary.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all engine configuration.
type Config struct {
	// Application
	App AppConfig

	// Snapshot persistence
	Persistence PersistenceConfig

	// Academic health weighting
	Health HealthWeights

	// Feature flags
	Features *FeatureFlags
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool

	// Timezone for all calendar-day math (deadlines, streak day boundaries).
	Timezone string
	Location *time.Location

	// LogLevel is the minimum log level (DEBUG, INFO, WARN, ERROR).
	LogLevel string

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// PersistenceConfig selects and configures the snapshot store.
// The engine itself never touches the medium; it hands a full snapshot to
// whichever store is configured here.
type PersistenceConfig struct {
	// Backend is one of "file", "postgres", "redis".
	Backend string

	// FilePath is the snapshot location for the file backend.
	FilePath string

	// DatabaseURL is the connection string for the postgres backend.
	DatabaseURL string

	// RedisURL is the connection string for the redis backend.
	RedisURL string

	// Autosave persists a snapshot after every mutating command.
	// When disabled only the shutdown save runs.
	Autosave bool

	// SaveAttempts bounds the retry loop around snapshot writes.
	SaveAttempts int
}

// HealthWeights are the four factor weights of the academic health score.
// The composite formula is fixed:
//
//	health = round(w1*taskCompletion + w2*focusConsistency +
//	               w3*gradePerformance + w4*attendancePerformance)
//
// Recognized options let a deployment re-balance the factors without changing
// the formula shape; the weights must sum to 1.
type HealthWeights struct {
	TaskCompletion        float64
	FocusConsistency      float64
	GradePerformance      float64
	AttendancePerformance float64
}

// DefaultHealthWeights returns the documented default weighting.
func DefaultHealthWeights() HealthWeights {
	return HealthWeights{
		TaskCompletion:        0.3,
		FocusConsistency:      0.2,
		GradePerformance:      0.2,
		AttendancePerformance: 0.3,
	}
}

// Validate checks that the weights form a proper convex combination.
func (w HealthWeights) Validate() error {
	for name, v := range map[string]float64{
		"task_completion":        w.TaskCompletion,
		"focus_consistency":      w.FocusConsistency,
		"grade_performance":      w.GradePerformance,
		"attendance_performance": w.AttendancePerformance,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: health weight %s out of range: %v", name, v)
		}
	}
	sum := w.TaskCompletion + w.FocusConsistency + w.GradePerformance + w.AttendancePerformance
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("config: health weights must sum to 1, got %v", sum)
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("ACADBOX_APP_NAME", "acadbox-engine"),
			Environment:     Environment(getEnv("ACADBOX_ENV", string(EnvDevelopment))),
			Debug:           getEnvBool("ACADBOX_DEBUG", false),
			Timezone:        getEnv("ACADBOX_TIMEZONE", "Local"),
			LogLevel:        getEnv("ACADBOX_LOG_LEVEL", "INFO"),
			ShutdownTimeout: getEnvDuration("ACADBOX_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Persistence: PersistenceConfig{
			Backend:      strings.ToLower(getEnv("ACADBOX_PERSISTENCE_BACKEND", BackendFile)),
			FilePath:     getEnv("ACADBOX_SNAPSHOT_PATH", "acadbox_snapshot.json"),
			DatabaseURL:  getEnv("ACADBOX_DATABASE_URL", ""),
			RedisURL:     getEnv("ACADBOX_REDIS_URL", ""),
			Autosave:     getEnvBool("ACADBOX_AUTOSAVE", true),
			SaveAttempts: getEnvInt("ACADBOX_SAVE_ATTEMPTS", 3),
		},
		Health: HealthWeights{
			TaskCompletion:        getEnvFloat("ACADBOX_HEALTH_WEIGHT_TASKS", 0.3),
			FocusConsistency:      getEnvFloat("ACADBOX_HEALTH_WEIGHT_FOCUS", 0.2),
			GradePerformance:      getEnvFloat("ACADBOX_HEALTH_WEIGHT_GRADES", 0.2),
			AttendancePerformance: getEnvFloat("ACADBOX_HEALTH_WEIGHT_ATTENDANCE", 0.3),
		},
		Features: LoadFeatureFlags(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := resolveLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", cfg.App.Timezone, err)
	}
	cfg.App.Location = loc

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: unknown environment %q", c.App.Environment)
	}

	switch c.Persistence.Backend {
	case BackendFile:
		if c.Persistence.FilePath == "" {
			return fmt.Errorf("config: file backend requires ACADBOX_SNAPSHOT_PATH")
		}
	case BackendPostgres:
		if c.Persistence.DatabaseURL == "" {
			return fmt.Errorf("config: postgres backend requires ACADBOX_DATABASE_URL")
		}
	case BackendRedis:
		if c.Persistence.RedisURL == "" {
			return fmt.Errorf("config: redis backend requires ACADBOX_REDIS_URL")
		}
	default:
		return fmt.Errorf("config: unknown persistence backend %q", c.Persistence.Backend)
	}

	if c.Persistence.SaveAttempts < 1 {
		return fmt.Errorf("config: ACADBOX_SAVE_ATTEMPTS must be at least 1")
	}

	return c.Health.Validate()
}

// IsDevelopment reports whether the engine runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

func resolveLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Environment helpers
// ─────────────────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}
