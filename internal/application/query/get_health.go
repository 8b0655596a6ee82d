package query

import (
	"context"
	"math"

	"github.com/acadbox/acadbox-engine/config"
	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/attendance"
	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET HEALTH BREAKDOWN QUERY
// The composite academic-health score over the current semester. Every
// component defaults to 100 when its inputs are empty, so a fresh start
// reads as perfect health rather than zero.
// ══════════════════════════════════════════════════════════════════════════════

// focusSessionWorth is how many consistency points one session earns.
const focusSessionWorth = 20

// GetHealthQuery contains the health parameters.
type GetHealthQuery struct {
	// Semester scopes the score; empty means the current semester.
	Semester string
}

// HealthBreakdownDTO is the component-by-component health report.
type HealthBreakdownDTO struct {
	TaskCompletion        float64 `json:"taskCompletion"`
	FocusConsistency      float64 `json:"focusConsistency"`
	GradePerformance      float64 `json:"gradePerformance"`
	AttendancePerformance float64 `json:"attendancePerformance"`
	HealthScore           int     `json:"healthScore"`
}

// GetHealthHandler handles the GetHealthQuery.
type GetHealthHandler struct {
	state   *state.AppState
	weights config.HealthWeights
}

// NewGetHealthHandler creates a new GetHealthHandler.
func NewGetHealthHandler(st *state.AppState, weights config.HealthWeights) *GetHealthHandler {
	if err := weights.Validate(); err != nil {
		weights = config.DefaultHealthWeights()
	}
	return &GetHealthHandler{state: st, weights: weights}
}

// Handle executes the health query.
func (h *GetHealthHandler) Handle(ctx context.Context, q GetHealthQuery) (*HealthBreakdownDTO, error) {
	semester := q.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}

	courses := h.state.CoursesBySemester(semester)
	courseSet := make(map[string]bool, len(courses))
	for _, c := range courses {
		courseSet[c.ID] = true
	}

	dto := &HealthBreakdownDTO{
		TaskCompletion:        h.taskCompletion(semester),
		FocusConsistency:      h.focusConsistency(courseSet),
		GradePerformance:      h.gradePerformance(courses),
		AttendancePerformance: h.attendancePerformance(courses),
	}
	dto.HealthScore = int(math.Round(
		h.weights.TaskCompletion*dto.TaskCompletion +
			h.weights.FocusConsistency*dto.FocusConsistency +
			h.weights.GradePerformance*dto.GradePerformance +
			h.weights.AttendancePerformance*dto.AttendancePerformance,
	))
	return dto, nil
}

func (h *GetHealthHandler) taskCompletion(semester string) float64 {
	tasks := h.state.TasksBySemester(semester)
	if len(tasks) == 0 {
		return 100
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(tasks))
}

func (h *GetHealthHandler) focusConsistency(courseSet map[string]bool) float64 {
	count := 0
	for _, s := range h.state.Sessions() {
		t := h.state.TaskByID(s.TaskID)
		if t == nil || !courseSet[t.CourseID] {
			continue
		}
		count++
	}
	return math.Min(100, float64(count*focusSessionWorth))
}

func (h *GetHealthHandler) gradePerformance(courses []*course.Course) float64 {
	var grades []*grade.Grade
	for _, c := range courses {
		grades = append(grades, h.state.GradesByCourse(c.ID)...)
	}
	// ComputeStats reports 100 for an empty collection.
	return grade.ComputeStats(grades).Percentage
}

func (h *GetHealthHandler) attendancePerformance(courses []*course.Course) float64 {
	if len(courses) == 0 {
		return 100
	}
	sum := 0.0
	for _, c := range courses {
		sum += attendance.Classify(h.state.AttendanceFor(c.ID)).Percentage
	}
	return sum / float64(len(courses))
}
