package query

import (
	"context"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/attendance"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ATTENDANCE STATUS QUERY
// Risk classification and the rule-based insight lines for one course. A
// course with no attendance record reads as Safe at 100%.
// ══════════════════════════════════════════════════════════════════════════════

// GetAttendanceStatusQuery contains the attendance parameters.
type GetAttendanceStatusQuery struct {
	CourseID string
}

// AttendanceStatusDTO is one course's attendance report.
type AttendanceStatusDTO struct {
	CourseID string               `json:"courseId"`
	Attended int                  `json:"attended"`
	Total    int                  `json:"total"`
	Status   attendance.Status    `json:"status"`
	Insights []attendance.Insight `json:"insights"`
}

// GetAttendanceStatusHandler handles the GetAttendanceStatusQuery.
type GetAttendanceStatusHandler struct {
	state *state.AppState
}

// NewGetAttendanceStatusHandler creates a new GetAttendanceStatusHandler.
func NewGetAttendanceStatusHandler(st *state.AppState) *GetAttendanceStatusHandler {
	return &GetAttendanceStatusHandler{state: st}
}

// Handle executes the attendance status query.
func (h *GetAttendanceStatusHandler) Handle(ctx context.Context, q GetAttendanceStatusQuery) (*AttendanceStatusDTO, error) {
	if q.CourseID == "" || h.state.CourseByID(q.CourseID) == nil {
		return nil, shared.ErrCourseNotFound
	}

	r := h.state.AttendanceFor(q.CourseID)
	dto := &AttendanceStatusDTO{
		CourseID: q.CourseID,
		Status:   attendance.Classify(r),
		Insights: attendance.Insights(r),
	}
	if r != nil {
		dto.Attended = r.Attended
		dto.Total = r.Total
	}
	return dto, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET ATTENDANCE OVERVIEW QUERY
// The same classification across every current-semester course at once.
// ══════════════════════════════════════════════════════════════════════════════

// GetAttendanceOverviewQuery contains the overview parameters.
type GetAttendanceOverviewQuery struct {
	// Semester scopes the overview; empty means the current semester.
	Semester string
}

// AttendanceOverviewDTO lists per-course statuses in course order.
type AttendanceOverviewDTO struct {
	Courses []AttendanceStatusDTO `json:"courses"`
}

// GetAttendanceOverviewHandler handles the GetAttendanceOverviewQuery.
type GetAttendanceOverviewHandler struct {
	state *state.AppState
}

// NewGetAttendanceOverviewHandler creates a new GetAttendanceOverviewHandler.
func NewGetAttendanceOverviewHandler(st *state.AppState) *GetAttendanceOverviewHandler {
	return &GetAttendanceOverviewHandler{state: st}
}

// Handle executes the attendance overview query.
func (h *GetAttendanceOverviewHandler) Handle(ctx context.Context, q GetAttendanceOverviewQuery) (*AttendanceOverviewDTO, error) {
	semester := q.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}

	dto := &AttendanceOverviewDTO{Courses: []AttendanceStatusDTO{}}
	for _, c := range h.state.CoursesBySemester(semester) {
		r := h.state.AttendanceFor(c.ID)
		item := AttendanceStatusDTO{
			CourseID: c.ID,
			Status:   attendance.Classify(r),
			Insights: attendance.Insights(r),
		}
		if r != nil {
			item.Attended = r.Attended
			item.Total = r.Total
		}
		dto.Courses = append(dto.Courses, item)
	}
	return dto, nil
}
