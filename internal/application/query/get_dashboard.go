package query

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/streak"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DASHBOARD QUERY
// The at-a-glance summary: pending workload, today's plan size, streak and
// the composite health score. Composes the schedule and health queries.
// ══════════════════════════════════════════════════════════════════════════════

// GetDashboardQuery contains the dashboard parameters.
type GetDashboardQuery struct {
	// Today anchors the day math; zero means the wall clock.
	Today time.Time
}

// DashboardDTO is the summary view.
type DashboardDTO struct {
	Semester      string              `json:"semester"`
	Courses       int                 `json:"courses"`
	PendingTasks  int                 `json:"pendingTasks"`
	TodayTasks    int                 `json:"todayTasks"`
	TomorrowTasks int                 `json:"tomorrowTasks"`
	Health        *HealthBreakdownDTO `json:"health"`
	StreakDays    int                 `json:"streakDays"`
	StreakStatus  streak.DayStatus    `json:"streakStatus"`
}

// GetDashboardHandler handles the GetDashboardQuery.
type GetDashboardHandler struct {
	state    *state.AppState
	schedule *GetScheduleHandler
	health   *GetHealthHandler
}

// NewGetDashboardHandler creates a new GetDashboardHandler.
func NewGetDashboardHandler(st *state.AppState, schedule *GetScheduleHandler, health *GetHealthHandler) *GetDashboardHandler {
	return &GetDashboardHandler{state: st, schedule: schedule, health: health}
}

// Handle executes the dashboard query.
func (h *GetDashboardHandler) Handle(ctx context.Context, q GetDashboardQuery) (*DashboardDTO, error) {
	today := q.Today
	if today.IsZero() {
		today = timeutil.Today()
	}
	semester := h.state.CurrentSemester()

	plan, err := h.schedule.Handle(ctx, GetScheduleQuery{Today: today, Semester: semester})
	if err != nil {
		return nil, err
	}
	health, err := h.health.Handle(ctx, GetHealthQuery{Semester: semester})
	if err != nil {
		return nil, err
	}

	pending := 0
	for _, t := range h.state.TasksBySemester(semester) {
		if t.IsPending() {
			pending++
		}
	}

	st := h.state.Streak()
	return &DashboardDTO{
		Semester:      semester,
		Courses:       len(h.state.CoursesBySemester(semester)),
		PendingTasks:  pending,
		TodayTasks:    len(plan.Today),
		TomorrowTasks: len(plan.Tomorrow),
		Health:        health,
		StreakDays:    st.Current,
		StreakStatus:  st.Status,
	}, nil
}
