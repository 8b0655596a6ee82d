package command

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/logger"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// START SESSION COMMAND
// At most one timed session exists at a time; starting over a live one is
// refused.
// ══════════════════════════════════════════════════════════════════════════════

// StartSessionCommand begins a timed focus session against a task.
type StartSessionCommand struct {
	TaskID         string
	PlannedMinutes int

	// Goal is a free-form intent note shown back at the end of the session.
	Goal string
}

// Validate validates the command.
func (c StartSessionCommand) Validate() error {
	if c.TaskID == "" {
		return shared.ErrTaskNotFound
	}
	if c.PlannedMinutes <= 0 {
		return shared.ErrInvalidDuration
	}
	return nil
}

// StartSessionResult contains the new active session.
type StartSessionResult struct {
	Session *focus.ActiveSession
}

// StartSessionHandler handles the StartSessionCommand.
type StartSessionHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewStartSessionHandler creates a new StartSessionHandler.
func NewStartSessionHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *StartSessionHandler {
	return &StartSessionHandler{state: st, events: events, log: log}
}

// Handle executes the start session command.
func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if h.state.TaskByID(cmd.TaskID) == nil {
		return nil, shared.ErrTaskNotFound
	}

	active, err := focus.Start(cmd.TaskID, cmd.PlannedMinutes, cmd.Goal, timeutil.Now())
	if err != nil {
		return nil, err
	}
	if err := h.state.SetActiveSession(active); err != nil {
		return nil, err
	}

	h.log.Info("focus session started",
		logger.SessionID(active.ID),
		logger.TaskID(active.TaskID),
		logger.Int("planned_minutes", active.PlannedMinutes),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSessionStarted, active.ID))

	return &StartSessionResult{Session: active}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// BREAK SESSION COMMAND
// An abandoned session is still recorded, with the elapsed minutes and a
// failed task outcome. Broken sessions never feed the streak.
// ══════════════════════════════════════════════════════════════════════════════

// BreakSessionCommand abandons the active session.
type BreakSessionCommand struct{}

// BreakSessionResult contains the recorded broken session.
type BreakSessionResult struct {
	Session *focus.Session
}

// BreakSessionHandler handles the BreakSessionCommand.
type BreakSessionHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewBreakSessionHandler creates a new BreakSessionHandler.
func NewBreakSessionHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *BreakSessionHandler {
	return &BreakSessionHandler{state: st, events: events, log: log}
}

// Handle executes the break session command.
func (h *BreakSessionHandler) Handle(ctx context.Context, cmd BreakSessionCommand) (*BreakSessionResult, error) {
	active := h.state.ActiveSession()
	if active == nil {
		return nil, shared.ErrNoActiveSession
	}

	sess, err := active.Break(timeutil.Now())
	if err != nil {
		return nil, err
	}
	h.state.AddSession(sess)
	h.state.ClearActiveSession()

	h.log.Info("focus session broken",
		logger.SessionID(sess.ID),
		logger.TaskID(sess.TaskID),
		logger.Int("elapsed_minutes", sess.DurationMinutes),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSessionBroken, sess.ID))

	return &BreakSessionResult{Session: sess}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ADD SESSION COMMAND
// Manual logging path: records a finished session without the timed
// lifecycle. A qualifying record feeds the streak exactly like a timed one.
// ══════════════════════════════════════════════════════════════════════════════

// AddSessionCommand records a finished focus session directly.
type AddSessionCommand struct {
	TaskID          string
	DurationMinutes int
	Status          focus.SessionStatus
	Outcome         focus.TaskOutcome

	// Timestamp defaults to now when zero.
	Timestamp time.Time
}

// Validate validates the command.
func (c AddSessionCommand) Validate() error {
	if c.TaskID == "" {
		return shared.ErrTaskNotFound
	}
	if c.DurationMinutes <= 0 {
		return shared.ErrInvalidDuration
	}
	return nil
}

// AddSessionResult contains the recorded session.
type AddSessionResult struct {
	Session       *focus.Session
	StreakLogged  bool
	CurrentStreak int
}

// AddSessionHandler handles the AddSessionCommand.
type AddSessionHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewAddSessionHandler creates a new AddSessionHandler.
func NewAddSessionHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *AddSessionHandler {
	return &AddSessionHandler{state: st, events: events, log: log}
}

// Handle executes the add session command.
func (h *AddSessionHandler) Handle(ctx context.Context, cmd AddSessionCommand) (*AddSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if h.state.TaskByID(cmd.TaskID) == nil {
		return nil, shared.ErrTaskNotFound
	}

	at := cmd.Timestamp
	if at.IsZero() {
		at = timeutil.Now()
	}
	sess, err := focus.NewSession(cmd.TaskID, cmd.DurationMinutes, cmd.Status, cmd.Outcome, at)
	if err != nil {
		return nil, err
	}
	h.state.AddSession(sess)

	result := &AddSessionResult{Session: sess}
	if sess.Qualifies() {
		result.StreakLogged = h.state.Streak().LogDay(at)
		if result.StreakLogged {
			_ = h.events.Publish(shared.NewBaseEvent(shared.EventStreakLogged, sess.ID))
		}
	}
	result.CurrentStreak = h.state.Streak().Current

	h.log.Info("focus session recorded",
		logger.SessionID(sess.ID),
		logger.TaskID(sess.TaskID),
		logger.Int("duration_minutes", sess.DurationMinutes),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSessionEnded, sess.ID))

	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// END SESSION COMMAND
// Finishing a session records it and, when the session completed with a
// completed task outcome, logs the day into the streak. Ending twice is
// refused by the session itself, so the streak increments at most once per
// session and once per calendar day.
// ══════════════════════════════════════════════════════════════════════════════

// EndSessionCommand finishes the active session with a self-reported outcome.
type EndSessionCommand struct {
	// ActualMinutes is the self-reported time on task.
	ActualMinutes int

	// Outcome is the self-assessment: completed, partial or failed.
	Outcome focus.TaskOutcome
}

// Validate validates the command.
func (c EndSessionCommand) Validate() error {
	if c.ActualMinutes <= 0 {
		return shared.ErrInvalidDuration
	}
	if !c.Outcome.Valid() {
		return shared.ErrInvalidInput
	}
	return nil
}

// EndSessionResult contains the recorded session and its follow-on effects.
type EndSessionResult struct {
	Session *focus.Session

	// Score is the focus score, min(100, actual/planned*100).
	Score int

	// StreakLogged reports whether this session advanced the streak.
	StreakLogged bool

	// CurrentStreak is the streak counter after the command.
	CurrentStreak int
}

// EndSessionHandler handles the EndSessionCommand.
type EndSessionHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewEndSessionHandler creates a new EndSessionHandler.
func NewEndSessionHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *EndSessionHandler {
	return &EndSessionHandler{state: st, events: events, log: log}
}

// Handle executes the end session command.
func (h *EndSessionHandler) Handle(ctx context.Context, cmd EndSessionCommand) (*EndSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	active := h.state.ActiveSession()
	if active == nil {
		return nil, shared.ErrNoActiveSession
	}

	now := timeutil.Now()
	sess, err := active.End(cmd.ActualMinutes, cmd.Outcome, now)
	if err != nil {
		return nil, err
	}
	h.state.AddSession(sess)
	h.state.ClearActiveSession()

	result := &EndSessionResult{
		Session: sess,
		Score:   focus.Score(active.PlannedMinutes, cmd.ActualMinutes),
	}

	// The streak tracker is invoked here, on the direct path, rather than
	// from a bus subscriber: the session emits the log exactly once.
	if sess.Qualifies() {
		result.StreakLogged = h.state.Streak().LogDay(now)
		if result.StreakLogged {
			_ = h.events.Publish(shared.NewBaseEvent(shared.EventStreakLogged, sess.ID))
		}
	}
	result.CurrentStreak = h.state.Streak().Current

	h.log.Info("focus session ended",
		logger.SessionID(sess.ID),
		logger.TaskID(sess.TaskID),
		logger.Int("actual_minutes", cmd.ActualMinutes),
		logger.Int("focus_score", result.Score),
		logger.Bool("streak_logged", result.StreakLogged),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSessionEnded, sess.ID))

	return result, nil
}
