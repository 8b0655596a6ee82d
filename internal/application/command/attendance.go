package command

import (
	"context"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/attendance"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE ATTENDANCE COMMAND
// Upserts the single counter pair of a course. Attended above total is
// refused and the stored record stays untouched.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateAttendanceCommand sets a course's attended/total counters.
type UpdateAttendanceCommand struct {
	CourseID string
	Attended int
	Total    int
}

// Validate validates the command.
func (c UpdateAttendanceCommand) Validate() error {
	if c.CourseID == "" {
		return shared.ErrCourseNotFound
	}
	if c.Attended < 0 || c.Total < 0 || c.Attended > c.Total {
		return shared.ErrInvalidAttendance
	}
	return nil
}

// UpdateAttendanceResult contains the refreshed risk classification.
type UpdateAttendanceResult struct {
	Record *attendance.Record
	Status attendance.Status
}

// UpdateAttendanceHandler handles the UpdateAttendanceCommand.
type UpdateAttendanceHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewUpdateAttendanceHandler creates a new UpdateAttendanceHandler.
func NewUpdateAttendanceHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *UpdateAttendanceHandler {
	return &UpdateAttendanceHandler{state: st, events: events, log: log}
}

// Handle executes the update attendance command.
func (h *UpdateAttendanceHandler) Handle(ctx context.Context, cmd UpdateAttendanceCommand) (*UpdateAttendanceResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	r := &attendance.Record{CourseID: cmd.CourseID, Attended: cmd.Attended, Total: cmd.Total}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := h.state.SetAttendance(r); err != nil {
		return nil, err
	}

	status := attendance.Classify(r)
	h.log.Info("attendance updated",
		logger.CourseID(cmd.CourseID),
		logger.Int("attended", cmd.Attended),
		logger.Int("total", cmd.Total),
		logger.String("risk", string(status.Level)),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventAttendanceUpdated, cmd.CourseID))

	return &UpdateAttendanceResult{Record: r, Status: status}, nil
}
