// Package streak contains the day-boundary consistency tracker.
// It is the only engine component with persisted, non-derived state.
package streak

import (
	"time"

	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// DayStatus marks the condition of the streak on a given day.
type DayStatus string

const (
	// StatusSolid means the streak is intact.
	StatusSolid DayStatus = "solid"

	// StatusCracked means more than one calendar day elapsed without a
	// qualifying session.
	StatusCracked DayStatus = "cracked"
)

// HistoryEntry records one logged day.
type HistoryEntry struct {
	Date   time.Time `json:"date"`
	Status DayStatus `json:"status"`
}

// State is the persisted streak singleton.
type State struct {
	// Current is the running day count. A crack marks the streak but, per
	// the engine's grace rule, does not reset the counter.
	Current int `json:"current"`

	History []HistoryEntry `json:"history"`

	Status DayStatus `json:"status"`

	// LastLogDate is the midnight of the last qualifying day; zero when no
	// session was ever logged.
	LastLogDate time.Time `json:"lastLogDate,omitempty"`
}

// NewState returns the initial streak state.
func NewState() *State {
	return &State{
		Current: 0,
		History: nil,
		Status:  StatusSolid,
	}
}

// LogDay records a qualifying focus session for the given time's day.
// Only the first qualifying session of a calendar day counts; repeats on the
// same day are no-ops. Returns true when the streak advanced.
func (s *State) LogDay(now time.Time) bool {
	today := timeutil.StartOfDay(now)
	if !s.LastLogDate.IsZero() && timeutil.IsSameDay(s.LastLogDate, today) {
		return false
	}

	s.Current++
	s.History = append(s.History, HistoryEntry{Date: today, Status: StatusSolid})
	s.Status = StatusSolid
	s.LastLogDate = today
	return true
}

// DecayCheck is the load-time rule: when more than one calendar day passed
// since the last logged day, the streak cracks. The counter itself is left
// untouched; resuming with a qualifying session the same day re-solidifies.
// Returns true when the status flipped to cracked.
func (s *State) DecayCheck(now time.Time) bool {
	if s.LastLogDate.IsZero() {
		return false
	}
	today := timeutil.StartOfDay(now)
	if timeutil.IsSameDay(s.LastLogDate, today) {
		return false
	}

	diffDays := timeutil.DaysBetween(s.LastLogDate, today)
	if diffDays > 1 && s.Status != StatusCracked {
		s.Status = StatusCracked
		return true
	}
	return false
}

// Clone returns a deep copy for snapshot export.
func (s *State) Clone() *State {
	clone := *s
	clone.History = make([]HistoryEntry, len(s.History))
	copy(clone.History, s.History)
	return &clone
}
