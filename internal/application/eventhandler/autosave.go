// Package eventhandler contains event bus subscribers that react to state
// changes. The only one today is the autosave handler, which persists a
// fresh snapshot after every mutation.
package eventhandler

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
	"github.com/acadbox/acadbox-engine/pkg/logger"
	"github.com/acadbox/acadbox-engine/pkg/retry"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// saveTimeout bounds one autosave write, including its retries.
const saveTimeout = 10 * time.Second

// Autosave persists a full snapshot through the configured store whenever
// any domain event fires. The engine treats every event as "state changed";
// a snapshot write is cheap at personal-planner scale and keeps the store
// a faithful copy of memory.
type Autosave struct {
	state   *state.AppState
	store   snapshot.Store
	retrier *retry.Retrier
	log     *logger.Logger
}

// NewAutosave creates the autosave handler.
func NewAutosave(st *state.AppState, store snapshot.Store, log *logger.Logger) *Autosave {
	return &Autosave{
		state: st,
		store: store,
		retrier: retry.New(
			retry.WithMaxAttempts(3),
			retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
				log.Warn("autosave retry",
					logger.Int("attempt", attempt),
					logger.Err(err),
					logger.Duration("delay", delay),
				)
			}),
		),
		log: log.With(logger.Component("autosave")),
	}
}

// Handle is the shared.EventHandler subscribed to all event types.
func (a *Autosave) Handle(event shared.Event) error {
	start := time.Now()
	snap := a.state.BuildSnapshot(timeutil.Now())

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	err := a.retrier.Do(ctx, func(ctx context.Context) error {
		return a.store.Save(ctx, snap)
	})
	if err != nil {
		a.log.Error("autosave failed",
			logger.EventType(string(event.EventType())),
			logger.Err(err),
		)
		return err
	}

	a.log.Debug("snapshot saved",
		logger.EventType(string(event.EventType())),
		logger.Latency(time.Since(start)),
	)
	return nil
}
