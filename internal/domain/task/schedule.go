package task

import (
	"sort"
	"time"
)

// Bucket is the scheduling window a task lands in.
type Bucket string

const (
	BucketToday    Bucket = "Today"
	BucketTomorrow Bucket = "Tomorrow"
)

// todayThreshold is the priority above which a task is scheduled for today.
const todayThreshold = 5.0

// ScheduledTask is a pending task with its computed placement.
type ScheduledTask struct {
	Task         *Task   `json:"task"`
	Priority     float64 `json:"priority"`
	ScheduledFor Bucket  `json:"scheduledFor"`

	// DurationHours equals the task's effort estimate.
	DurationHours int `json:"duration"`
}

// BuildSchedule derives the two-day schedule from the task collection.
// Pending tasks are scored, ordered by descending priority (stable: equal
// priorities keep their input order) and bucketed into Today/Tomorrow.
// The schedule is fully recomputed on every call.
func BuildSchedule(tasks []*Task, today time.Time) []ScheduledTask {
	scheduled := make([]ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsPending() {
			continue
		}
		priority := PriorityScore(t, today)
		bucket := BucketTomorrow
		if priority > todayThreshold {
			bucket = BucketToday
		}
		scheduled = append(scheduled, ScheduledTask{
			Task:          t,
			Priority:      priority,
			ScheduledFor:  bucket,
			DurationHours: t.Effort,
		})
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].Priority > scheduled[j].Priority
	})

	return scheduled
}
