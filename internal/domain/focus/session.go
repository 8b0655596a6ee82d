// Package focus contains the focus-session record and the timed session
// state machine (start, emergency break, end).
package focus

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acadbox/acadbox-engine/internal/domain/shared"
)

// SessionStatus is how a timed session finished.
type SessionStatus string

const (
	// SessionCompleted means the timer ran (or was ended) normally.
	SessionCompleted SessionStatus = "completed"

	// SessionBroken means the session was aborted: emergency exit or the
	// host reporting the app went to background.
	SessionBroken SessionStatus = "broken"
)

// TaskOutcome is the self-reported result for the session's task.
type TaskOutcome string

const (
	OutcomeCompleted TaskOutcome = "completed"
	OutcomePartial   TaskOutcome = "partial"
	OutcomeFailed    TaskOutcome = "failed"
)

// Valid reports whether the outcome is one of the known values.
func (o TaskOutcome) Valid() bool {
	switch o {
	case OutcomeCompleted, OutcomePartial, OutcomeFailed:
		return true
	}
	return false
}

// Session is one recorded focus session. TaskID may dangle if the task is
// deleted later; lookups simply miss and the record drops out of analytics.
type Session struct {
	ID     string `json:"id"`
	TaskID string `json:"taskId"`

	// DurationMinutes is the time actually focused.
	DurationMinutes int `json:"duration"`

	Status      SessionStatus `json:"status"`
	TaskOutcome TaskOutcome   `json:"taskStatus"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Qualifies reports whether the session counts toward the streak: the timer
// completed and the task was actually finished.
func (s *Session) Qualifies() bool {
	return s.Status == SessionCompleted && s.TaskOutcome == OutcomeCompleted
}

// DurationHours converts the focused minutes to hours.
func (s *Session) DurationHours() float64 {
	return float64(s.DurationMinutes) / 60
}

// NewSession records a finished session directly, bypassing the timed
// lifecycle. Used for manual logging.
func NewSession(taskID string, durationMinutes int, status SessionStatus, outcome TaskOutcome, at time.Time) (*Session, error) {
	if durationMinutes <= 0 {
		return nil, shared.ErrInvalidDuration
	}
	if status != SessionCompleted && status != SessionBroken {
		return nil, shared.ErrInvalidInput
	}
	if !outcome.Valid() {
		return nil, shared.ErrInvalidInput
	}
	return &Session{
		ID:              uuid.NewString(),
		TaskID:          taskID,
		DurationMinutes: durationMinutes,
		Status:          status,
		TaskOutcome:     outcome,
		Timestamp:       at,
	}, nil
}

// ActiveState is the lifecycle state of the singleton timed session.
type ActiveState string

const (
	StateActive ActiveState = "active"
	StateEnded  ActiveState = "ended"
)

// ActiveSession is the singleton wall-clock countdown. The engine does not
// tick it; the host observes the clock and delivers break/end exactly once.
// Duplicate delivery is tolerated: ending an ended session is rejected with
// ErrSessionAlreadyEnded, which callers treat as a no-op.
type ActiveSession struct {
	ID             string      `json:"id"`
	TaskID         string      `json:"taskId"`
	PlannedMinutes int         `json:"plannedMinutes"`
	Goal           string      `json:"goal"`
	StartedAt      time.Time   `json:"startedAt"`
	State          ActiveState `json:"state"`
}

// Start creates a new active session for a task.
func Start(taskID string, plannedMinutes int, goal string, now time.Time) (*ActiveSession, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, shared.ErrTaskNotFound
	}
	if plannedMinutes <= 0 {
		return nil, shared.ErrInvalidDuration
	}
	return &ActiveSession{
		ID:             uuid.NewString(),
		TaskID:         taskID,
		PlannedMinutes: plannedMinutes,
		Goal:           strings.TrimSpace(goal),
		StartedAt:      now,
		State:          StateActive,
	}, nil
}

// Break aborts the session and records a broken Session with the elapsed
// focus time and a failed outcome.
func (a *ActiveSession) Break(now time.Time) (*Session, error) {
	if a.State != StateActive {
		return nil, shared.ErrSessionAlreadyEnded
	}
	a.State = StateEnded

	elapsed := int(now.Sub(a.StartedAt).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > a.PlannedMinutes {
		elapsed = a.PlannedMinutes
	}

	return &Session{
		ID:              a.ID,
		TaskID:          a.TaskID,
		DurationMinutes: elapsed,
		Status:          SessionBroken,
		TaskOutcome:     OutcomeFailed,
		Timestamp:       now,
	}, nil
}

// End completes the session with the autopsy report: the actual focused
// minutes and the self-assessed task outcome.
func (a *ActiveSession) End(actualMinutes int, outcome TaskOutcome, now time.Time) (*Session, error) {
	if a.State != StateActive {
		return nil, shared.ErrSessionAlreadyEnded
	}
	if actualMinutes < 0 {
		return nil, shared.ErrInvalidDuration
	}
	if !outcome.Valid() {
		return nil, shared.ErrInvalidInput
	}
	a.State = StateEnded

	return &Session{
		ID:              a.ID,
		TaskID:          a.TaskID,
		DurationMinutes: actualMinutes,
		Status:          SessionCompleted,
		TaskOutcome:     outcome,
		Timestamp:       now,
	}, nil
}

// Score rates how much of the planned time was actually focused, capped at
// 100.
func Score(plannedMinutes, actualMinutes int) int {
	if plannedMinutes <= 0 {
		return 0
	}
	score := int(math.Round(100 * float64(actualMinutes) / float64(plannedMinutes)))
	if score > 100 {
		score = 100
	}
	return score
}
