// Package main is the entry point for the AcadBox engine host.
//
// The engine itself is a library of commands and queries over an in-memory
// state; this binary wires the ambient pieces around it: configuration,
// logging, the snapshot store, the event bus with the autosave subscriber,
// and the boot checks (snapshot restore, streak decay, overdue reschedule).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/acadbox/acadbox-engine/config"
	"github.com/acadbox/acadbox-engine/internal/application/command"
	"github.com/acadbox/acadbox-engine/internal/application/eventhandler"
	"github.com/acadbox/acadbox-engine/internal/application/query"
	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
	"github.com/acadbox/acadbox-engine/internal/infrastructure/messaging"
	filestore "github.com/acadbox/acadbox-engine/internal/infrastructure/persistence/file"
	"github.com/acadbox/acadbox-engine/internal/infrastructure/persistence/postgres"
	redisstore "github.com/acadbox/acadbox-engine/internal/infrastructure/persistence/redis"
	"github.com/acadbox/acadbox-engine/pkg/logger"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING & TIMEZONE
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting acadbox engine",
		logger.String("env", string(cfg.App.Environment)),
		logger.Bool("debug", cfg.App.Debug),
		logger.String("timezone", cfg.App.Timezone),
		logger.Backend(cfg.Persistence.Backend),
	)

	// All calendar-day math (deadlines, streak boundaries) follows the
	// configured location.
	timeutil.Location = cfg.App.Location

	// ─────────────────────────────────────────────────────────────────────────
	// 3. SNAPSHOT STORE
	// ─────────────────────────────────────────────────────────────────────────
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer func() {
		log.Info("closing snapshot store")
		_ = store.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. STATE RESTORE
	// ─────────────────────────────────────────────────────────────────────────
	appState := state.New()
	snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, snapshot.ErrEmpty):
		log.Info("no stored snapshot, starting from the default seed")
	case err != nil:
		return fmt.Errorf("failed to load snapshot: %w", err)
	default:
		appState.RestoreSnapshot(snap)
		log.Info("snapshot restored",
			logger.Int("courses", len(snap.Courses)),
			logger.Int("tasks", len(snap.Tasks)),
			logger.Time("taken_at", snap.TakenAt),
		)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. EVENT BUS + AUTOSAVE
	// ─────────────────────────────────────────────────────────────────────────
	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		Logger:        slog.Default(),
		EnableMetrics: cfg.App.Debug,
	})
	defer func() {
		log.Info("closing event bus")
		_ = bus.Close()
	}()

	if cfg.Persistence.Autosave {
		autosave := eventhandler.NewAutosave(appState, store, log)
		if err := bus.SubscribeAll(autosave.Handle); err != nil {
			return fmt.Errorf("failed to subscribe autosave: %w", err)
		}
		log.Info("autosave enabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. BOOT CHECKS
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Features.IsEnabled(config.FeatureStreakDecay) {
		decay := command.NewCheckStreakDecayHandler(appState, bus, log)
		res, err := decay.Handle(ctx, command.CheckStreakDecayCommand{})
		if err != nil {
			return fmt.Errorf("streak decay check failed: %w", err)
		}
		if res.Cracked {
			log.Info("streak cracked after inactivity", logger.StreakDays(res.CurrentStreak))
		}
	}

	if cfg.Features.IsEnabled(config.FeatureAutoReschedule) {
		reschedule := command.NewRescheduleOverdueHandler(appState, bus, log)
		res, err := reschedule.Handle(ctx, command.RescheduleOverdueCommand{})
		if err != nil {
			return fmt.Errorf("overdue reschedule failed: %w", err)
		}
		if n := len(res.Rescheduled); n > 0 {
			log.Info("moved overdue tasks to tomorrow", logger.Int("count", n))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. STARTUP SUMMARY
	// ─────────────────────────────────────────────────────────────────────────
	scheduleQ := query.NewGetScheduleHandler(appState)
	healthQ := query.NewGetHealthHandler(appState, cfg.Health)
	dashboardQ := query.NewGetDashboardHandler(appState, scheduleQ, healthQ)

	dashboard, err := dashboardQ.Handle(ctx, query.GetDashboardQuery{})
	if err != nil {
		return fmt.Errorf("failed to build startup summary: %w", err)
	}
	log.Info("engine ready",
		logger.Semester(dashboard.Semester),
		logger.Int("courses", dashboard.Courses),
		logger.Int("pending_tasks", dashboard.PendingTasks),
		logger.Int("today_tasks", dashboard.TodayTasks),
		logger.HealthScore(dashboard.Health.HealthScore),
		logger.StreakDays(dashboard.StreakDays),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. WAIT FOR SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. FINAL SNAPSHOT SAVE
	// ─────────────────────────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := store.Save(shutdownCtx, appState.BuildSnapshot(timeutil.Now())); err != nil {
		log.Error("final snapshot save failed", logger.Err(err))
		return err
	}
	log.Info("final snapshot saved, goodbye")
	return nil
}

// openStore builds the snapshot store selected by the configuration.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Persistence.Backend {
	case config.BackendFile:
		return filestore.NewSnapshotStore(cfg.Persistence.FilePath)

	case config.BackendPostgres:
		pgCfg := postgres.DefaultConfig()
		pgCfg.URL = cfg.Persistence.DatabaseURL
		pool, err := postgres.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewSnapshotRepo(ctx, pool)

	case config.BackendRedis:
		rdCfg := redisstore.DefaultConfig()
		rdCfg.URL = cfg.Persistence.RedisURL
		return redisstore.NewSnapshotCache(ctx, rdCfg)

	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}

// setupLogger builds the process logger from the configuration.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.App.LogLevel)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts)
}
