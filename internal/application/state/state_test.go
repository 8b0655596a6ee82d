package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadbox/acadbox-engine/internal/domain/attendance"
	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

func seedCourse(t *testing.T, st *AppState, name, semester string) *course.Course {
	t.Helper()
	c, err := course.New(name, 4, "#3b82f6", semester)
	require.NoError(t, err)
	require.NoError(t, st.AddCourse(c))
	return c
}

func seedTask(t *testing.T, st *AppState, courseID, title string) *task.Task {
	t.Helper()
	tk, err := task.New(title, courseID, task.TypeAssignment, timeutil.Date(2026, 3, 10), 3)
	require.NoError(t, err)
	require.NoError(t, st.AddTask(tk))
	return tk
}

func TestNew_SeedsDefaults(t *testing.T) {
	st := New()

	assert.Equal(t, course.DefaultSemesterName, st.CurrentSemester())
	assert.Empty(t, st.Courses())
	assert.Equal(t, 0, st.Streak().Current)
	assert.Equal(t, shared.DefaultSettings(), st.Settings())
	assert.Nil(t, st.ActiveSession())
}

func TestAddCourse_UnknownSemesterRefused(t *testing.T) {
	st := New()
	c, err := course.New("Algorithms", 4, "", "Semester 9")
	require.NoError(t, err)

	assert.ErrorIs(t, st.AddCourse(c), shared.ErrSemesterNotFound)
}

func TestAddTask_UnknownCourseRefused(t *testing.T) {
	st := New()
	tk, err := task.New("Worksheet", "nope", task.TypeAssignment, timeutil.Date(2026, 3, 10), 2)
	require.NoError(t, err)

	assert.ErrorIs(t, st.AddTask(tk), shared.ErrCourseNotFound)
}

func TestDeleteCourse_SweepsDependents(t *testing.T) {
	st := New()
	doomed := seedCourse(t, st, "Physics", course.DefaultSemesterName)
	kept := seedCourse(t, st, "Chemistry", course.DefaultSemesterName)

	doomedTask := seedTask(t, st, doomed.ID, "Lab report")
	keptTask := seedTask(t, st, kept.ID, "Problem set")

	g, err := grade.New(doomed.ID, grade.TypeQuiz, "Quiz 1", 8, 10, 10, timeutil.Date(2026, 3, 1))
	require.NoError(t, err)
	require.NoError(t, st.AddGrade(g))
	require.NoError(t, st.SetAttendance(&attendance.Record{CourseID: doomed.ID, Attended: 10, Total: 12}))

	st.AddSession(&focus.Session{ID: "s1", TaskID: doomedTask.ID, DurationMinutes: 30})
	st.AddSession(&focus.Session{ID: "s2", TaskID: keptTask.ID, DurationMinutes: 30})

	require.NoError(t, st.DeleteCourse(doomed.ID))

	// Nothing referencing the deleted course survives, including the focus
	// sessions of its tasks.
	require.Len(t, st.Courses(), 1)
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, keptTask.ID, st.Tasks()[0].ID)
	assert.Empty(t, st.GradesByCourse(doomed.ID))
	assert.Nil(t, st.AttendanceFor(doomed.ID))
	require.Len(t, st.Sessions(), 1)
	assert.Equal(t, keptTask.ID, st.Sessions()[0].TaskID)
}

func TestDeleteSemester_CascadesThroughCourses(t *testing.T) {
	st := New()
	require.NoError(t, st.AddSemester("Semester 2"))
	old := seedCourse(t, st, "Physics", course.DefaultSemesterName)
	next := seedCourse(t, st, "Compilers", "Semester 2")
	oldTask := seedTask(t, st, old.ID, "Lab report")
	st.AddSession(&focus.Session{ID: "s1", TaskID: oldTask.ID, DurationMinutes: 30})

	require.NoError(t, st.DeleteSemester(course.DefaultSemesterName))

	assert.Equal(t, "Semester 2", st.CurrentSemester())
	require.Len(t, st.Courses(), 1)
	assert.Equal(t, next.ID, st.Courses()[0].ID)
	assert.Empty(t, st.Tasks())
	assert.Empty(t, st.Sessions())
}

func TestDeleteSemester_LastRefused(t *testing.T) {
	st := New()

	assert.ErrorIs(t, st.DeleteSemester(course.DefaultSemesterName), shared.ErrLastSemester)
}

func TestRenameSemester_RepointsCourses(t *testing.T) {
	st := New()
	c := seedCourse(t, st, "Physics", course.DefaultSemesterName)

	require.NoError(t, st.RenameSemester(course.DefaultSemesterName, "Fall 2026"))

	assert.Equal(t, "Fall 2026", st.CurrentSemester())
	assert.Equal(t, "Fall 2026", st.CourseByID(c.ID).Semester)
	assert.Len(t, st.CoursesBySemester("Fall 2026"), 1)
}

func TestSetAttendance_Upserts(t *testing.T) {
	st := New()
	c := seedCourse(t, st, "Physics", course.DefaultSemesterName)

	require.NoError(t, st.SetAttendance(&attendance.Record{CourseID: c.ID, Attended: 5, Total: 6}))
	require.NoError(t, st.SetAttendance(&attendance.Record{CourseID: c.ID, Attended: 6, Total: 8}))

	require.Len(t, st.AttendanceRecords(), 1)
	assert.Equal(t, 6, st.AttendanceFor(c.ID).Attended)
	assert.Equal(t, 8, st.AttendanceFor(c.ID).Total)
}

func TestSetActiveSession_RefusesSecondLiveSession(t *testing.T) {
	st := New()
	first, err := focus.Start("t1", 25, "", timeutil.Now())
	require.NoError(t, err)
	require.NoError(t, st.SetActiveSession(first))

	second, err := focus.Start("t2", 25, "", timeutil.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, st.SetActiveSession(second), shared.ErrSessionAlreadyActive)

	st.ClearActiveSession()
	assert.NoError(t, st.SetActiveSession(second))
}

func TestUpdateSettings_PartialPatch(t *testing.T) {
	st := New()
	dark := shared.ThemeDark

	got := st.UpdateSettings(shared.SettingsPatch{Theme: &dark})

	assert.Equal(t, shared.ThemeDark, got.Theme)
	// Unpatched fields keep their defaults.
	assert.Equal(t, 4, got.DailyGoal)
	assert.True(t, got.Notifications)
}

func TestResetAll(t *testing.T) {
	st := New()
	require.NoError(t, st.AddSemester("Semester 2"))
	c := seedCourse(t, st, "Physics", course.DefaultSemesterName)
	seedTask(t, st, c.ID, "Lab report")
	st.Streak().LogDay(timeutil.Date(2026, 3, 2))

	st.ResetAll()

	assert.Empty(t, st.Courses())
	assert.Empty(t, st.Tasks())
	assert.Equal(t, []string{course.DefaultSemesterName}, st.Semesters().Names)
	assert.Equal(t, 0, st.Streak().Current)
	assert.Equal(t, shared.DefaultSettings(), st.Settings())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	st := New()
	require.NoError(t, st.AddSemester("Semester 2"))
	c := seedCourse(t, st, "Physics", course.DefaultSemesterName)
	tk := seedTask(t, st, c.ID, "Lab report")
	g, err := grade.New(c.ID, grade.TypeQuiz, "Quiz 1", 8, 10, 10, timeutil.Date(2026, 3, 1))
	require.NoError(t, err)
	require.NoError(t, st.AddGrade(g))
	require.NoError(t, st.SetAttendance(&attendance.Record{CourseID: c.ID, Attended: 10, Total: 12}))
	st.AddSession(&focus.Session{ID: "s1", TaskID: tk.ID, DurationMinutes: 50})
	st.Streak().LogDay(timeutil.Date(2026, 3, 2))

	snap := st.BuildSnapshot(timeutil.Date(2026, 3, 2))

	restored := New()
	restored.RestoreSnapshot(snap)

	assert.Len(t, restored.Courses(), 1)
	assert.Len(t, restored.Tasks(), 1)
	assert.Len(t, restored.Grades(), 1)
	assert.Len(t, restored.Sessions(), 1)
	assert.NotNil(t, restored.AttendanceFor(c.ID))
	assert.Equal(t, []string{course.DefaultSemesterName, "Semester 2"}, restored.Semesters().Names)
	assert.Equal(t, 1, restored.Streak().Current)
	assert.Equal(t, shared.DefaultSettings(), restored.Settings())
}

func TestBuildSnapshot_IsDetachedFromState(t *testing.T) {
	st := New()
	c := seedCourse(t, st, "Physics", course.DefaultSemesterName)
	st.Streak().LogDay(timeutil.Date(2026, 3, 2))

	snap := st.BuildSnapshot(timeutil.Date(2026, 3, 2))

	require.NoError(t, st.DeleteCourse(c.ID))
	require.NoError(t, st.AddSemester("Semester 2"))
	st.Streak().LogDay(timeutil.Date(2026, 3, 3))

	assert.Len(t, snap.Courses, 1)
	assert.Equal(t, []string{course.DefaultSemesterName}, snap.Semesters.Names)
	assert.Equal(t, 1, snap.Streak.Current)
}

func TestRestoreSnapshot_DefensiveDefaults(t *testing.T) {
	st := New()

	// A document from an older export: no semester list, no streak, zero
	// settings.
	st.RestoreSnapshot(&snapshot.Snapshot{})

	assert.Equal(t, []string{course.DefaultSemesterName}, st.Semesters().Names)
	assert.Equal(t, 0, st.Streak().Current)
	assert.Equal(t, shared.DefaultSettings(), st.Settings())
}

func TestRestoreSnapshot_RepointsMissingCurrent(t *testing.T) {
	st := New()

	st.RestoreSnapshot(&snapshot.Snapshot{
		Semesters: course.SemesterList{
			Names:   []string{"Fall 2026", "Spring 2027"},
			Current: "Gone",
		},
	})

	assert.Equal(t, "Fall 2026", st.CurrentSemester())
}
