package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, 0, s.Current)
	assert.Equal(t, StatusSolid, s.Status)
	assert.Empty(t, s.History)
	assert.True(t, s.LastLogDate.IsZero())
}

func TestLogDay_FirstSessionStartsStreak(t *testing.T) {
	s := NewState()
	now := timeutil.Date(2026, 3, 2).Add(14 * time.Hour)

	advanced := s.LogDay(now)

	require.True(t, advanced)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, StatusSolid, s.Status)
	require.Len(t, s.History, 1)
	assert.Equal(t, timeutil.Date(2026, 3, 2), s.History[0].Date)
}

func TestLogDay_SameDayIsIdempotent(t *testing.T) {
	s := NewState()
	morning := timeutil.Date(2026, 3, 2).Add(9 * time.Hour)
	evening := timeutil.Date(2026, 3, 2).Add(21 * time.Hour)

	require.True(t, s.LogDay(morning))
	advanced := s.LogDay(evening)

	// Two qualifying sessions on one calendar day count once.
	assert.False(t, advanced)
	assert.Equal(t, 1, s.Current)
	assert.Len(t, s.History, 1)
}

func TestLogDay_ConsecutiveDaysIncrement(t *testing.T) {
	s := NewState()

	for day := 2; day <= 6; day++ {
		require.True(t, s.LogDay(timeutil.Date(2026, 3, day)))
	}

	assert.Equal(t, 5, s.Current)
	assert.Len(t, s.History, 5)
}

func TestLogDay_ResolidifiesAfterCrack(t *testing.T) {
	s := NewState()
	require.True(t, s.LogDay(timeutil.Date(2026, 3, 2)))
	require.True(t, s.DecayCheck(timeutil.Date(2026, 3, 5)))

	advanced := s.LogDay(timeutil.Date(2026, 3, 5))

	require.True(t, advanced)
	assert.Equal(t, StatusSolid, s.Status)
	assert.Equal(t, 2, s.Current)
}

func TestDecayCheck_NeverLoggedIsNoop(t *testing.T) {
	s := NewState()

	cracked := s.DecayCheck(timeutil.Date(2026, 3, 10))

	assert.False(t, cracked)
	assert.Equal(t, StatusSolid, s.Status)
}

func TestDecayCheck_SameDayAndNextDayStaySolid(t *testing.T) {
	s := NewState()
	require.True(t, s.LogDay(timeutil.Date(2026, 3, 2)))

	assert.False(t, s.DecayCheck(timeutil.Date(2026, 3, 2).Add(23*time.Hour)))
	assert.False(t, s.DecayCheck(timeutil.Date(2026, 3, 3)))
	assert.Equal(t, StatusSolid, s.Status)
}

func TestDecayCheck_GapCracksWithoutResettingCounter(t *testing.T) {
	s := NewState()
	require.True(t, s.LogDay(timeutil.Date(2026, 3, 2)))
	require.True(t, s.LogDay(timeutil.Date(2026, 3, 3)))

	cracked := s.DecayCheck(timeutil.Date(2026, 3, 6))

	require.True(t, cracked)
	assert.Equal(t, StatusCracked, s.Status)
	// The crack marks the streak but keeps the day count intact.
	assert.Equal(t, 2, s.Current)
}

func TestDecayCheck_AlreadyCrackedReportsFalse(t *testing.T) {
	s := NewState()
	require.True(t, s.LogDay(timeutil.Date(2026, 3, 2)))
	require.True(t, s.DecayCheck(timeutil.Date(2026, 3, 5)))

	cracked := s.DecayCheck(timeutil.Date(2026, 3, 6))

	assert.False(t, cracked)
	assert.Equal(t, StatusCracked, s.Status)
}

func TestClone_IsIndependent(t *testing.T) {
	s := NewState()
	require.True(t, s.LogDay(timeutil.Date(2026, 3, 2)))

	clone := s.Clone()
	clone.Current = 99
	clone.History[0].Status = StatusCracked

	assert.Equal(t, 1, s.Current)
	assert.Equal(t, StatusSolid, s.History[0].Status)
}
