package command

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/logger"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD GRADE COMMAND
// Quiz and Assignment grades repeat freely; Mid-Sem and End-Sem are refused
// once a grade of the same type exists for the course.
// ══════════════════════════════════════════════════════════════════════════════

// AddGradeCommand contains the data to record a grade.
type AddGradeCommand struct {
	CourseID  string
	Type      grade.Type
	Title     string
	Scored    float64
	Total     float64
	Weightage float64

	// Date defaults to today when zero.
	Date time.Time
}

// Validate validates the command.
func (c AddGradeCommand) Validate() error {
	if c.CourseID == "" {
		return shared.ErrCourseNotFound
	}
	if c.Title == "" {
		return shared.ErrGradeTitleEmpty
	}
	if !c.Type.Valid() {
		return shared.ErrInvalidGradeType
	}
	if c.Total <= 0 || c.Scored < 0 {
		return shared.ErrInvalidGradeTotal
	}
	if c.Weightage < 0 || c.Weightage > 100 {
		return shared.ErrInvalidWeightage
	}
	return nil
}

// AddGradeResult contains the result of recording a grade.
type AddGradeResult struct {
	Grade *grade.Grade

	// Stats are the course's recomputed aggregates after the insert.
	Stats grade.Stats
}

// AddGradeHandler handles the AddGradeCommand.
type AddGradeHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewAddGradeHandler creates a new AddGradeHandler.
func NewAddGradeHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *AddGradeHandler {
	return &AddGradeHandler{state: st, events: events, log: log}
}

// Handle executes the add grade command.
func (h *AddGradeHandler) Handle(ctx context.Context, cmd AddGradeCommand) (*AddGradeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if !grade.CanAddType(h.state.GradesByCourse(cmd.CourseID), cmd.Type) {
		return nil, shared.ErrDuplicateExamGrade
	}

	date := cmd.Date
	if date.IsZero() {
		date = timeutil.Today()
	}

	g, err := grade.New(cmd.CourseID, cmd.Type, cmd.Title, cmd.Scored, cmd.Total, cmd.Weightage, date)
	if err != nil {
		return nil, err
	}
	if err := h.state.AddGrade(g); err != nil {
		return nil, err
	}

	stats := grade.ComputeStats(h.state.GradesByCourse(cmd.CourseID))
	h.log.Info("grade added",
		logger.GradeID(g.ID),
		logger.CourseID(g.CourseID),
		logger.String("type", string(g.Type)),
		logger.Float64("calibrated_score", stats.CalibratedScore),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventGradeAdded, g.ID))

	return &AddGradeResult{Grade: g, Stats: stats}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE GRADE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateGradeCommand replaces the score fields of an existing grade. The
// grade keeps its course, type and date.
type UpdateGradeCommand struct {
	GradeID   string
	Title     string
	Scored    float64
	Total     float64
	Weightage float64
}

// Validate validates the command.
func (c UpdateGradeCommand) Validate() error {
	if c.GradeID == "" {
		return shared.ErrGradeNotFound
	}
	if c.Total <= 0 || c.Scored < 0 {
		return shared.ErrInvalidGradeTotal
	}
	if c.Weightage < 0 || c.Weightage > 100 {
		return shared.ErrInvalidWeightage
	}
	return nil
}

// UpdateGradeResult contains the result of updating a grade.
type UpdateGradeResult struct {
	Grade *grade.Grade
	Stats grade.Stats
}

// UpdateGradeHandler handles the UpdateGradeCommand.
type UpdateGradeHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewUpdateGradeHandler creates a new UpdateGradeHandler.
func NewUpdateGradeHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *UpdateGradeHandler {
	return &UpdateGradeHandler{state: st, events: events, log: log}
}

// Handle executes the update grade command.
func (h *UpdateGradeHandler) Handle(ctx context.Context, cmd UpdateGradeCommand) (*UpdateGradeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing := h.state.GradeByID(cmd.GradeID)
	if existing == nil {
		return nil, shared.ErrGradeNotFound
	}

	updated := *existing
	if cmd.Title != "" {
		updated.Title = cmd.Title
	}
	updated.Scored = cmd.Scored
	updated.Total = cmd.Total
	updated.Weightage = cmd.Weightage
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := h.state.UpdateGrade(&updated); err != nil {
		return nil, err
	}

	stats := grade.ComputeStats(h.state.GradesByCourse(updated.CourseID))
	h.log.Info("grade updated", logger.GradeID(updated.ID), logger.CourseID(updated.CourseID))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventGradeUpdated, updated.ID))

	return &UpdateGradeResult{Grade: &updated, Stats: stats}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE GRADE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteGradeCommand removes a grade.
type DeleteGradeCommand struct {
	GradeID string
}

// Validate validates the command.
func (c DeleteGradeCommand) Validate() error {
	if c.GradeID == "" {
		return shared.ErrGradeNotFound
	}
	return nil
}

// DeleteGradeHandler handles the DeleteGradeCommand.
type DeleteGradeHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewDeleteGradeHandler creates a new DeleteGradeHandler.
func NewDeleteGradeHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *DeleteGradeHandler {
	return &DeleteGradeHandler{state: st, events: events, log: log}
}

// Handle executes the delete grade command.
func (h *DeleteGradeHandler) Handle(ctx context.Context, cmd DeleteGradeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.state.DeleteGrade(cmd.GradeID); err != nil {
		return err
	}

	h.log.Info("grade deleted", logger.GradeID(cmd.GradeID))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventGradeDeleted, cmd.GradeID))
	return nil
}
