package query

import (
	"context"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET COURSE GRADES QUERY
// Aggregates one course's grades: totals, per-type breakdown, calibrated
// score, confidence indicator and which grade types can still be added.
// ══════════════════════════════════════════════════════════════════════════════

// GetCourseGradesQuery contains the course grade parameters.
type GetCourseGradesQuery struct {
	CourseID string
}

// CourseGradesDTO is one course's grade report.
type CourseGradesDTO struct {
	CourseID   string           `json:"courseId"`
	Grades     []*grade.Grade   `json:"grades"`
	Stats      grade.Stats      `json:"stats"`
	Confidence grade.Confidence `json:"confidence"`

	// AddableTypes lists the grade types a new grade may still use; exam
	// types disappear once recorded.
	AddableTypes []grade.Type `json:"addableTypes"`
}

// GetCourseGradesHandler handles the GetCourseGradesQuery.
type GetCourseGradesHandler struct {
	state *state.AppState
}

// NewGetCourseGradesHandler creates a new GetCourseGradesHandler.
func NewGetCourseGradesHandler(st *state.AppState) *GetCourseGradesHandler {
	return &GetCourseGradesHandler{state: st}
}

// Handle executes the course grades query.
func (h *GetCourseGradesHandler) Handle(ctx context.Context, q GetCourseGradesQuery) (*CourseGradesDTO, error) {
	if q.CourseID == "" || h.state.CourseByID(q.CourseID) == nil {
		return nil, shared.ErrCourseNotFound
	}

	grades := h.state.GradesByCourse(q.CourseID)
	dto := &CourseGradesDTO{
		CourseID:   q.CourseID,
		Grades:     grades,
		Stats:      grade.ComputeStats(grades),
		Confidence: grade.ConfidenceFor(grades),
	}
	for _, t := range grade.AllTypes {
		if grade.CanAddType(grades, t) {
			dto.AddableTypes = append(dto.AddableTypes, t)
		}
	}
	return dto, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET PERFORMANCE INDEX QUERY
// SPI over the current semester's courses, CPI over every course on record.
// Only courses with a positive calibrated score enter the averages.
// ══════════════════════════════════════════════════════════════════════════════

// GetPerformanceIndexQuery contains the index parameters.
type GetPerformanceIndexQuery struct {
	// Semester anchors the SPI; empty means the current semester.
	Semester string
}

// PerformanceIndexDTO holds both credit-weighted indexes on a 10-point scale.
type PerformanceIndexDTO struct {
	SPI float64 `json:"spi"`
	CPI float64 `json:"cpi"`
}

// GetPerformanceIndexHandler handles the GetPerformanceIndexQuery.
type GetPerformanceIndexHandler struct {
	state *state.AppState
}

// NewGetPerformanceIndexHandler creates a new GetPerformanceIndexHandler.
func NewGetPerformanceIndexHandler(st *state.AppState) *GetPerformanceIndexHandler {
	return &GetPerformanceIndexHandler{state: st}
}

// Handle executes the performance index query.
func (h *GetPerformanceIndexHandler) Handle(ctx context.Context, q GetPerformanceIndexQuery) (*PerformanceIndexDTO, error) {
	semester := q.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}

	return &PerformanceIndexDTO{
		SPI: grade.PerformanceIndex(h.state.CoursesBySemester(semester), h.state.GradesByCourse),
		CPI: grade.PerformanceIndex(h.state.Courses(), h.state.GradesByCourse),
	}, nil
}
