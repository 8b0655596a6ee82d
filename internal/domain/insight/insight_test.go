package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

func TestPriorityExplanation_Default(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)
	tk := &task.Task{
		Title:    "Read chapter 4",
		Type:     task.TypeReading,
		Deadline: timeutil.Date(2026, 3, 12),
		Effort:   2,
	}
	c := &course.Course{Name: "History", Credits: 3}

	got := PriorityExplanation(tk, c, today)

	assert.Equal(t, DefaultExplanation, got)
}

func TestPriorityExplanation_CombinesReasons(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)
	tk := &task.Task{
		Title:    "Mid-sem prep",
		Type:     task.TypeExam,
		Deadline: timeutil.Date(2026, 3, 3),
		Effort:   5,
	}
	c := &course.Course{Name: "Data Structures", Credits: 4}

	got := PriorityExplanation(tk, c, today)

	assert.Contains(t, got, "This task is prioritized because")
	assert.Contains(t, got, "it is due in 1 days")
	assert.Contains(t, got, "requires 5 hours of deep work")
	assert.Contains(t, got, "high-credit course (4 credits)")
	assert.Contains(t, got, "upcoming examination")
}

func TestPriorityExplanation_DanglingCourse(t *testing.T) {
	today := timeutil.Date(2026, 3, 2)
	tk := &task.Task{
		Title:    "Worksheet",
		Type:     task.TypeAssignment,
		Deadline: timeutil.Date(2026, 3, 3),
		Effort:   1,
	}

	got := PriorityExplanation(tk, nil, today)

	assert.Contains(t, got, "it is due in 1 days")
	assert.NotContains(t, got, "high-credit")
}

func gradesByCourse(grades map[string][]*grade.Grade) func(string) []*grade.Grade {
	return func(courseID string) []*grade.Grade {
		return grades[courseID]
	}
}

func TestWeakSubject(t *testing.T) {
	courses := []*course.Course{
		{ID: "c1", Name: "Physics"},
		{ID: "c2", Name: "Chemistry"},
	}
	grades := map[string][]*grade.Grade{
		"c1": {{CourseID: "c1", Type: grade.TypeQuiz, Scored: 6, Total: 10}},
		// c2 has no grades and reads as 100%.
	}

	got := WeakSubject(courses, gradesByCourse(grades))

	assert.Equal(t, "Physics may need more attention this week due to lower performance.", got)
}

func TestWeakSubject_NoneBelowCutoff(t *testing.T) {
	courses := []*course.Course{{ID: "c1", Name: "Physics"}}
	grades := map[string][]*grade.Grade{
		"c1": {{CourseID: "c1", Type: grade.TypeQuiz, Scored: 7, Total: 10}},
	}

	assert.Equal(t, "", WeakSubject(courses, gradesByCourse(grades)))
	assert.Equal(t, "", WeakSubject(nil, gradesByCourse(nil)))
}

func TestWeakSubject_TieKeepsEarlierCourse(t *testing.T) {
	courses := []*course.Course{
		{ID: "c1", Name: "Physics"},
		{ID: "c2", Name: "Chemistry"},
	}
	grades := map[string][]*grade.Grade{
		"c1": {{CourseID: "c1", Type: grade.TypeQuiz, Scored: 5, Total: 10}},
		"c2": {{CourseID: "c2", Type: grade.TypeQuiz, Scored: 5, Total: 10}},
	}

	got := WeakSubject(courses, gradesByCourse(grades))

	assert.Contains(t, got, "Physics")
}

func taskLookup(tasks map[string]*task.Task) func(string) *task.Task {
	return func(id string) *task.Task {
		return tasks[id]
	}
}

func TestEffortAccuracy_Overestimate(t *testing.T) {
	courses := []*course.Course{{ID: "c1", Name: "Physics"}}
	tasks := map[string]*task.Task{
		"t1": {ID: "t1", CourseID: "c1", Effort: 2},
	}
	// Estimated 2h per session, focused 90 minutes each: 25% under the plan.
	sessions := []*focus.Session{
		{TaskID: "t1", DurationMinutes: 90},
		{TaskID: "t1", DurationMinutes: 90},
	}

	got := EffortAccuracy(courses, sessions, taskLookup(tasks))

	assert.Equal(t, "You usually overestimate Physics tasks by ~25%", got)
}

func TestEffortAccuracy_Underestimate(t *testing.T) {
	courses := []*course.Course{{ID: "c1", Name: "Physics"}}
	tasks := map[string]*task.Task{
		"t1": {ID: "t1", CourseID: "c1", Effort: 2},
	}
	sessions := []*focus.Session{
		{TaskID: "t1", DurationMinutes: 150},
		{TaskID: "t1", DurationMinutes: 150},
	}

	got := EffortAccuracy(courses, sessions, taskLookup(tasks))

	assert.Equal(t, "You usually underestimate Physics tasks by ~25%", got)
}

func TestEffortAccuracy_WithinTolerance(t *testing.T) {
	courses := []*course.Course{{ID: "c1", Name: "Physics"}}
	tasks := map[string]*task.Task{
		"t1": {ID: "t1", CourseID: "c1", Effort: 2},
	}
	sessions := []*focus.Session{
		{TaskID: "t1", DurationMinutes: 120},
		{TaskID: "t1", DurationMinutes: 110},
	}

	assert.Equal(t, "", EffortAccuracy(courses, sessions, taskLookup(tasks)))
}

func TestEffortAccuracy_NeedsTwoSessions(t *testing.T) {
	courses := []*course.Course{{ID: "c1", Name: "Physics"}}
	tasks := map[string]*task.Task{
		"t1": {ID: "t1", CourseID: "c1", Effort: 2},
	}
	sessions := []*focus.Session{{TaskID: "t1", DurationMinutes: 10}}

	assert.Equal(t, "", EffortAccuracy(courses, sessions, taskLookup(tasks)))
}

func TestEffortAccuracy_SkipsOrphanedSessions(t *testing.T) {
	courses := []*course.Course{{ID: "c1", Name: "Physics"}}
	sessions := []*focus.Session{
		{TaskID: "gone", DurationMinutes: 300},
		{TaskID: "gone", DurationMinutes: 300},
	}

	assert.Equal(t, "", EffortAccuracy(courses, sessions, taskLookup(nil)))
}

func TestBuildWeeklyReflection(t *testing.T) {
	tasks := []*task.Task{
		{ID: "t1", CourseID: "c1", Status: task.StatusCompleted},
		{ID: "t2", CourseID: "c1", Status: task.StatusCompleted},
		{ID: "t3", CourseID: "c1", Status: task.StatusPending},
	}
	sessions := []*focus.Session{
		{TaskID: "t1", DurationMinutes: 50},
		{TaskID: "t2", DurationMinutes: 40},
	}
	courses := []*course.Course{{ID: "c1", Name: "Linear Algebra"}}
	grades := map[string][]*grade.Grade{
		"c1": {{CourseID: "c1", Type: grade.TypeQuiz, Scored: 5, Total: 10}},
	}

	got := BuildWeeklyReflection(tasks, sessions, courses, gradesByCourse(grades))

	assert.Equal(t, 2, got.TasksCompleted)
	assert.InDelta(t, 1.5, got.FocusHours, 1e-9)
	// The suggestion names only the first word of the course.
	assert.Equal(t, "Try increasing focus time for Linear.", got.Suggestion)
}

func TestBuildWeeklyReflection_NoWeakSubject(t *testing.T) {
	got := BuildWeeklyReflection(nil, nil, nil, gradesByCourse(nil))

	assert.Equal(t, 0, got.TasksCompleted)
	assert.Equal(t, 0.0, got.FocusHours)
	assert.Equal(t, "You're doing great! Keep it up.", got.Suggestion)
}
