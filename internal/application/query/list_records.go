package query

import (
	"context"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/streak"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST RECORDS QUERY
// Plain collection listings for the presentation layer, optionally scoped
// to one semester. No analytics here; derived numbers come from the
// dedicated queries.
// ══════════════════════════════════════════════════════════════════════════════

// ListRecordsQuery contains the listing parameters.
type ListRecordsQuery struct {
	// Semester filters courses and tasks; empty means no filter.
	Semester string
}

// RecordsDTO bundles the raw collections.
type RecordsDTO struct {
	Courses   []*course.Course    `json:"courses"`
	Tasks     []*task.Task        `json:"tasks"`
	Sessions  []*focus.Session    `json:"focusSessions"`
	Semesters course.SemesterList `json:"semesters"`
	Streak    *streak.State       `json:"streak"`
}

// ListRecordsHandler handles the ListRecordsQuery.
type ListRecordsHandler struct {
	state *state.AppState
}

// NewListRecordsHandler creates a new ListRecordsHandler.
func NewListRecordsHandler(st *state.AppState) *ListRecordsHandler {
	return &ListRecordsHandler{state: st}
}

// Handle executes the listing query.
func (h *ListRecordsHandler) Handle(ctx context.Context, q ListRecordsQuery) (*RecordsDTO, error) {
	dto := &RecordsDTO{
		Sessions:  h.state.Sessions(),
		Semesters: h.state.Semesters(),
		Streak:    h.state.Streak().Clone(),
	}
	if q.Semester == "" {
		dto.Courses = h.state.Courses()
		dto.Tasks = h.state.Tasks()
	} else {
		dto.Courses = h.state.CoursesBySemester(q.Semester)
		dto.Tasks = h.state.TasksBySemester(q.Semester)
	}
	return dto, nil
}
