package query

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/insight"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PRIORITY EXPLANATION QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetPriorityExplanationQuery asks why one task is placed where it is.
type GetPriorityExplanationQuery struct {
	TaskID string

	// Today anchors the day math; zero means the wall clock.
	Today time.Time
}

// GetPriorityExplanationHandler handles the GetPriorityExplanationQuery.
type GetPriorityExplanationHandler struct {
	state *state.AppState
}

// NewGetPriorityExplanationHandler creates a new GetPriorityExplanationHandler.
func NewGetPriorityExplanationHandler(st *state.AppState) *GetPriorityExplanationHandler {
	return &GetPriorityExplanationHandler{state: st}
}

// Handle executes the priority explanation query.
func (h *GetPriorityExplanationHandler) Handle(ctx context.Context, q GetPriorityExplanationQuery) (string, error) {
	t := h.state.TaskByID(q.TaskID)
	if t == nil {
		return "", shared.ErrTaskNotFound
	}
	today := q.Today
	if today.IsZero() {
		today = timeutil.Today()
	}
	return insight.PriorityExplanation(t, h.state.CourseByID(t.CourseID), today), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET WEEKLY REFLECTION QUERY
// Completed-task count and focused hours over the current semester, plus
// the weak-subject line reworded as a suggestion.
// ══════════════════════════════════════════════════════════════════════════════

// GetWeeklyReflectionQuery contains the reflection parameters.
type GetWeeklyReflectionQuery struct {
	// Semester scopes the reflection; empty means the current semester.
	Semester string
}

// GetWeeklyReflectionHandler handles the GetWeeklyReflectionQuery.
type GetWeeklyReflectionHandler struct {
	state *state.AppState
}

// NewGetWeeklyReflectionHandler creates a new GetWeeklyReflectionHandler.
func NewGetWeeklyReflectionHandler(st *state.AppState) *GetWeeklyReflectionHandler {
	return &GetWeeklyReflectionHandler{state: st}
}

// Handle executes the weekly reflection query.
func (h *GetWeeklyReflectionHandler) Handle(ctx context.Context, q GetWeeklyReflectionQuery) (insight.WeeklyReflection, error) {
	semester := q.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}

	courses := h.state.CoursesBySemester(semester)
	courseSet := make(map[string]bool, len(courses))
	for _, c := range courses {
		courseSet[c.ID] = true
	}

	var sessions []*focus.Session
	for _, s := range h.state.Sessions() {
		if t := h.state.TaskByID(s.TaskID); t != nil && courseSet[t.CourseID] {
			sessions = append(sessions, s)
		}
	}

	return insight.BuildWeeklyReflection(
		h.state.TasksBySemester(semester),
		sessions,
		courses,
		h.state.GradesByCourse,
	), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDY INSIGHTS QUERY
// The dashboard insight lines: weak subject and effort accuracy. Empty
// strings mean the rule did not fire.
// ══════════════════════════════════════════════════════════════════════════════

// GetStudyInsightsQuery contains the insight parameters.
type GetStudyInsightsQuery struct {
	// Semester scopes the weak-subject pick; empty means the current one.
	Semester string
}

// StudyInsightsDTO is the rule-based insight report.
type StudyInsightsDTO struct {
	WeakSubject    string `json:"weakSubject,omitempty"`
	EffortAccuracy string `json:"effortAccuracy,omitempty"`
}

// GetStudyInsightsHandler handles the GetStudyInsightsQuery.
type GetStudyInsightsHandler struct {
	state *state.AppState
}

// NewGetStudyInsightsHandler creates a new GetStudyInsightsHandler.
func NewGetStudyInsightsHandler(st *state.AppState) *GetStudyInsightsHandler {
	return &GetStudyInsightsHandler{state: st}
}

// Handle executes the study insights query.
func (h *GetStudyInsightsHandler) Handle(ctx context.Context, q GetStudyInsightsQuery) (*StudyInsightsDTO, error) {
	semester := q.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}
	courses := h.state.CoursesBySemester(semester)

	return &StudyInsightsDTO{
		WeakSubject:    insight.WeakSubject(courses, h.state.GradesByCourse),
		EffortAccuracy: insight.EffortAccuracy(courses, h.state.Sessions(), h.state.TaskByID),
	}, nil
}
