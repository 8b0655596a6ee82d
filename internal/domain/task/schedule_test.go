package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

func TestBuildSchedule_EmptyInput(t *testing.T) {
	got := BuildSchedule(nil, timeutil.Date(2026, 3, 2))
	assert.Empty(t, got)
}

func TestBuildSchedule_BucketsAtThreshold(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)

	urgent := newTestTask(t, TypeAssignment, today.AddDate(0, 0, 1), 3)   // 10.5
	relaxed := newTestTask(t, TypeReading, today.AddDate(0, 0, 30), 6)   // 3.0
	borderline := newTestTask(t, TypeReading, today.AddDate(0, 0, 30), 10) // exactly 5.0

	got := BuildSchedule([]*Task{urgent, relaxed, borderline}, today)
	require.Len(t, got, 3)

	assert.Equal(t, urgent.ID, got[0].Task.ID)
	assert.Equal(t, BucketToday, got[0].ScheduledFor)

	// Exactly 5 is not strictly above the threshold.
	assert.Equal(t, borderline.ID, got[1].Task.ID)
	assert.Equal(t, BucketTomorrow, got[1].ScheduledFor)

	assert.Equal(t, relaxed.ID, got[2].Task.ID)
	assert.Equal(t, BucketTomorrow, got[2].ScheduledFor)
}

func TestBuildSchedule_SkipsCompletedTasks(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)

	done := newTestTask(t, TypeAssignment, today.AddDate(0, 0, 1), 3)
	require.NoError(t, done.Complete())
	pending := newTestTask(t, TypeAssignment, today.AddDate(0, 0, 1), 3)

	got := BuildSchedule([]*Task{done, pending}, today)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].Task.ID)
}

func TestBuildSchedule_StableForEqualPriorities(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)
	deadline := today.AddDate(0, 0, 3)

	first := newTestTask(t, TypeAssignment, deadline, 4)
	second := newTestTask(t, TypeAssignment, deadline, 4)
	third := newTestTask(t, TypeAssignment, deadline, 4)

	got := BuildSchedule([]*Task{first, second, third}, today)
	require.Len(t, got, 3)

	// Equal scores keep their input order.
	assert.Equal(t, first.ID, got[0].Task.ID)
	assert.Equal(t, second.ID, got[1].Task.ID)
	assert.Equal(t, third.ID, got[2].Task.ID)
	assert.Equal(t, got[0].Priority, got[1].Priority)
}

func TestBuildSchedule_DurationEqualsEffort(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)
	task := newTestTask(t, TypeProject, today.AddDate(0, 0, 2), 7)

	got := BuildSchedule([]*Task{task}, today)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].DurationHours)
}
