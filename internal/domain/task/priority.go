package task

import (
	"time"

	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// Priority scoring constants. The score is an unbounded relative ordering
// metric, not a percentage: urgency grows as the deadline approaches and is
// floored at zero for far-future work, exams weigh double, and heavier tasks
// get a small effort bonus so they surface earlier.
const (
	urgencyHorizonDays = 10
	examTypeWeight     = 2.0
	baseTypeWeight     = 1.0
	effortWeight       = 0.5
)

// PriorityScore computes the priority of a task as of the given day.
//
//	daysUntil = ceil(deadline - today)          (negative when overdue)
//	urgency   = max(0, 10 - daysUntil)
//	score     = urgency * typeWeight + effort * 0.5
//
// Overdue tasks keep climbing through the urgency term alone; the final score
// is never clamped.
func PriorityScore(t *Task, today time.Time) float64 {
	daysUntil := timeutil.CeilDaysUntil(t.Deadline, today)

	urgency := float64(urgencyHorizonDays - daysUntil)
	if urgency < 0 {
		urgency = 0
	}

	typeWeight := baseTypeWeight
	if t.Type == TypeExam {
		typeWeight = examTypeWeight
	}

	return urgency*typeWeight + float64(t.Effort)*effortWeight
}

// DaysUntilDeadline exposes the scorer's day delta for explanation text.
func DaysUntilDeadline(t *Task, today time.Time) int {
	return timeutil.CeilDaysUntil(t.Deadline, today)
}
