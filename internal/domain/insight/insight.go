// Package insight derives natural-language explanations from the analytics:
// why a task is prioritized, which subject is weak, how effort estimates
// compare to reality, and the weekly reflection.
package insight

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
)

// Explanation thresholds.
const (
	dueSoonDays        = 2
	deepWorkHours      = 3
	highCreditCourse   = 4
	weakSubjectCutoff  = 70.0
	minSessionsForAccuracy = 2
	accuracyDeviationPct   = 20.0
)

// DefaultExplanation is returned when no prioritization reason applies.
const DefaultExplanation = "This task is scheduled for steady progress."

// PriorityExplanation joins the applicable reasons a task ranks where it
// does. The course may be nil when the reference dangles.
func PriorityExplanation(t *task.Task, c *course.Course, today time.Time) string {
	daysUntil := task.DaysUntilDeadline(t, today)

	var reasons []string
	if daysUntil <= dueSoonDays {
		reasons = append(reasons, fmt.Sprintf("it is due in %d days", daysUntil))
	}
	if t.Effort >= deepWorkHours {
		reasons = append(reasons, fmt.Sprintf("requires %d hours of deep work", t.Effort))
	}
	if c != nil && c.Credits >= highCreditCourse {
		reasons = append(reasons, fmt.Sprintf("belongs to a high-credit course (%d credits)", c.Credits))
	}
	if t.Type == task.TypeExam {
		reasons = append(reasons, "it is an upcoming examination")
	}

	if len(reasons) == 0 {
		return DefaultExplanation
	}
	return fmt.Sprintf("This task is prioritized because %s.", strings.Join(reasons, ", "))
}

// WeakSubject finds the lowest-performing course (ties keep the earlier
// course) and reports it when its percentage is below 70. Returns "" when no
// course qualifies. Ungraded courses read as 100% and never qualify.
func WeakSubject(courses []*course.Course, gradesFor func(courseID string) []*grade.Grade) string {
	c := weakestCourse(courses, gradesFor)
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s may need more attention this week due to lower performance.", c.Name)
}

func weakestCourse(courses []*course.Course, gradesFor func(courseID string) []*grade.Grade) *course.Course {
	var weakest *course.Course
	lowest := math.Inf(1)

	for _, c := range courses {
		pct := grade.ComputeStats(gradesFor(c.ID)).Percentage
		if pct < lowest {
			lowest = pct
			weakest = c
		}
	}

	if weakest == nil || lowest >= weakSubjectCutoff {
		return nil
	}
	return weakest
}

// EffortAccuracy compares estimated task effort against actual focused time
// per course and reports the first course (in the given course order) whose
// relative deviation exceeds 20%. Requires at least two focus sessions.
// Actual time above the estimate reads as an underestimate.
func EffortAccuracy(
	courses []*course.Course,
	sessions []*focus.Session,
	taskByID func(taskID string) *task.Task,
) string {
	if len(sessions) < minSessionsForAccuracy {
		return ""
	}

	type effortPair struct {
		estimated float64
		actual    float64
	}
	byCourse := make(map[string]*effortPair)

	for _, s := range sessions {
		t := taskByID(s.TaskID)
		if t == nil {
			// Orphaned session; the task was deleted.
			continue
		}
		pair, ok := byCourse[t.CourseID]
		if !ok {
			pair = &effortPair{}
			byCourse[t.CourseID] = pair
		}
		pair.estimated += float64(t.Effort)
		pair.actual += s.DurationHours()
	}

	for _, c := range courses {
		pair, ok := byCourse[c.ID]
		if !ok || pair.estimated == 0 {
			continue
		}
		diff := 100 * (pair.actual - pair.estimated) / pair.estimated
		if math.Abs(diff) <= accuracyDeviationPct {
			continue
		}
		direction := "overestimate"
		if diff > 0 {
			direction = "underestimate"
		}
		return fmt.Sprintf("You usually %s %s tasks by ~%d%%",
			direction, c.Name, int(math.Abs(math.Round(diff))))
	}

	return ""
}

// WeeklyReflection summarizes the week for the current semester.
type WeeklyReflection struct {
	TasksCompleted int     `json:"tasksCompleted"`
	FocusHours     float64 `json:"focusHours"`
	Suggestion     string  `json:"insight"`
}

// BuildWeeklyReflection counts completed tasks and focused hours over the
// given (already semester-scoped) records and rewords the weak-subject
// insight as a suggestion.
func BuildWeeklyReflection(
	tasks []*task.Task,
	sessions []*focus.Session,
	courses []*course.Course,
	gradesFor func(courseID string) []*grade.Grade,
) WeeklyReflection {
	completed := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
	}

	minutes := 0
	for _, s := range sessions {
		minutes += s.DurationMinutes
	}

	suggestion := "You're doing great! Keep it up."
	if weak := weakestCourse(courses, gradesFor); weak != nil {
		suggestion = fmt.Sprintf("Try increasing focus time for %s.", firstWord(weak.Name))
	}

	return WeeklyReflection{
		TasksCompleted: completed,
		FocusHours:     math.Round(float64(minutes)/60*10) / 10,
		Suggestion:     suggestion,
	}
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
