// Package query contains read operations (CQRS - Queries). Queries never
// mutate state; every answer is recomputed from current records.
package query

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/insight"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SCHEDULE QUERY
// The two-day plan: pending tasks of the current semester, ordered by
// priority, bucketed into Today and Tomorrow, each with a one-sentence
// explanation of its placement.
// ══════════════════════════════════════════════════════════════════════════════

// GetScheduleQuery contains the schedule parameters.
type GetScheduleQuery struct {
	// Today anchors the day math; zero means the wall clock.
	Today time.Time

	// Semester scopes the plan; empty means the current semester.
	Semester string
}

// ScheduledItemDTO is one planned slot.
type ScheduledItemDTO struct {
	TaskID        string    `json:"taskId"`
	Title         string    `json:"title"`
	CourseID      string    `json:"courseId"`
	CourseName    string    `json:"courseName,omitempty"`
	Type          task.Type `json:"type"`
	Deadline      time.Time `json:"deadline"`
	Priority      float64   `json:"priority"`
	Bucket        string    `json:"bucket"`
	DurationHours int       `json:"durationHours"`
	Explanation   string    `json:"explanation"`
}

// ScheduleDTO is the two-day plan.
type ScheduleDTO struct {
	Today    []ScheduledItemDTO `json:"today"`
	Tomorrow []ScheduledItemDTO `json:"tomorrow"`
}

// GetScheduleHandler handles the GetScheduleQuery.
type GetScheduleHandler struct {
	state *state.AppState
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(st *state.AppState) *GetScheduleHandler {
	return &GetScheduleHandler{state: st}
}

// Handle executes the schedule query.
func (h *GetScheduleHandler) Handle(ctx context.Context, q GetScheduleQuery) (*ScheduleDTO, error) {
	today := q.Today
	if today.IsZero() {
		today = timeutil.Today()
	}
	semester := q.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}

	scheduled := task.BuildSchedule(h.state.TasksBySemester(semester), today)

	dto := &ScheduleDTO{
		Today:    []ScheduledItemDTO{},
		Tomorrow: []ScheduledItemDTO{},
	}
	for _, s := range scheduled {
		c := h.state.CourseByID(s.Task.CourseID)
		item := ScheduledItemDTO{
			TaskID:        s.Task.ID,
			Title:         s.Task.Title,
			CourseID:      s.Task.CourseID,
			Type:          s.Task.Type,
			Deadline:      s.Task.Deadline,
			Priority:      s.Priority,
			Bucket:        string(s.ScheduledFor),
			DurationHours: s.DurationHours,
			Explanation:   insight.PriorityExplanation(s.Task, c, today),
		}
		if c != nil {
			item.CourseName = c.Name
		}
		if s.ScheduledFor == task.BucketToday {
			dto.Today = append(dto.Today, item)
		} else {
			dto.Tomorrow = append(dto.Tomorrow, item)
		}
	}

	return dto, nil
}
