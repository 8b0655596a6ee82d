// Package task contains the Task entity, the priority scorer and the two-day
// scheduler.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// Type classifies a task.
type Type string

const (
	TypeAssignment Type = "Assignment"
	TypeExam       Type = "Exam"
	TypeReading    Type = "Reading"
	TypeProject    Type = "Project"
)

// Valid reports whether the type is one of the known task types.
func (t Type) Valid() bool {
	switch t {
	case TypeAssignment, TypeExam, TypeReading, TypeProject:
		return true
	}
	return false
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is a unit of academic work with a deadline and an effort estimate.
// After completion only Status may ever change.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	CourseID string `json:"courseId"`
	Type     Type   `json:"type"`

	// Deadline is the calendar date the task is due, normalized to midnight.
	Deadline time.Time `json:"deadline"`

	// Effort is the estimated hours of work, 1-10.
	Effort int `json:"effort"`

	Status Status `json:"status"`

	// Rescheduled marks tasks that were moved forward by the overdue sweep.
	Rescheduled bool `json:"rescheduled"`
}

// Effort bounds.
const (
	MinEffort = 1
	MaxEffort = 10
)

// New creates a validated pending Task with a fresh ID.
func New(title, courseID string, taskType Type, deadline time.Time, effort int) (*Task, error) {
	t := &Task{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		CourseID: courseID,
		Type:     taskType,
		Deadline: timeutil.StartOfDay(deadline),
		Effort:   effort,
		Status:   StatusPending,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return shared.ErrTaskTitleEmpty
	}
	if strings.TrimSpace(t.CourseID) == "" {
		return shared.ErrCourseNotFound
	}
	if !t.Type.Valid() {
		return shared.ErrInvalidTaskType
	}
	if t.Deadline.IsZero() {
		return shared.ErrTaskNoDeadline
	}
	if t.Effort < MinEffort || t.Effort > MaxEffort {
		return shared.ErrInvalidEffort
	}
	return nil
}

// IsPending reports whether the task still needs work.
func (t *Task) IsPending() bool {
	return t.Status == StatusPending
}

// Complete marks the task as done. Completing twice is refused.
func (t *Task) Complete() error {
	if t.Status == StatusCompleted {
		return shared.ErrTaskCompleted
	}
	t.Status = StatusCompleted
	return nil
}

// RescheduleTo moves an overdue pending task to the given date and flags it.
func (t *Task) RescheduleTo(date time.Time) {
	t.Deadline = timeutil.StartOfDay(date)
	t.Rescheduled = true
}

// IsOverdue reports whether a pending task's deadline is before today.
func (t *Task) IsOverdue(today time.Time) bool {
	return t.IsPending() && t.Deadline.Before(timeutil.StartOfDay(today))
}
