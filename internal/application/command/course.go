// Package command contains write operations (CQRS - Commands).
//
// Every command follows the same shape: a command struct with Validate(),
// a handler holding the application state and the event bus, and a result.
// Handlers refuse invalid input by returning a domain error that satisfies
// shared.IsRefused; the stored state is never left half-mutated.
package command

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD COURSE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AddCourseCommand contains the data to register a new course.
type AddCourseCommand struct {
	// Name is the course title.
	Name string

	// Credits is the course credit weight, must be positive.
	Credits int

	// Color is a display hint carried through untouched.
	Color string

	// Semester is the target semester; empty means the current one.
	Semester string
}

// Validate validates the command.
func (c AddCourseCommand) Validate() error {
	if c.Name == "" {
		return shared.ErrCourseNameEmpty
	}
	if c.Credits <= 0 {
		return shared.ErrInvalidCredits
	}
	return nil
}

// AddCourseResult contains the result of adding a course.
type AddCourseResult struct {
	Course *course.Course
}

// AddCourseHandler handles the AddCourseCommand.
type AddCourseHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewAddCourseHandler creates a new AddCourseHandler.
func NewAddCourseHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *AddCourseHandler {
	return &AddCourseHandler{state: st, events: events, log: log}
}

// Handle executes the add course command.
func (h *AddCourseHandler) Handle(ctx context.Context, cmd AddCourseCommand) (*AddCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	semester := cmd.Semester
	if semester == "" {
		semester = h.state.CurrentSemester()
	}

	c, err := course.New(cmd.Name, cmd.Credits, cmd.Color, semester)
	if err != nil {
		return nil, err
	}
	if err := h.state.AddCourse(c); err != nil {
		return nil, err
	}

	h.log.Info("course added",
		logger.CourseID(c.ID),
		logger.String("name", c.Name),
		logger.Semester(c.Semester),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventCourseAdded, c.ID))

	return &AddCourseResult{Course: c}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE COURSE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateCourseCommand edits an existing course in place. Zero-valued fields
// keep their stored value.
type UpdateCourseCommand struct {
	CourseID string
	Name     string
	Credits  int
	Color    string
}

// Validate validates the command.
func (c UpdateCourseCommand) Validate() error {
	if c.CourseID == "" {
		return shared.ErrCourseNotFound
	}
	if c.Credits < 0 {
		return shared.ErrInvalidCredits
	}
	return nil
}

// UpdateCourseResult contains the result of updating a course.
type UpdateCourseResult struct {
	Course *course.Course
}

// UpdateCourseHandler handles the UpdateCourseCommand.
type UpdateCourseHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewUpdateCourseHandler creates a new UpdateCourseHandler.
func NewUpdateCourseHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *UpdateCourseHandler {
	return &UpdateCourseHandler{state: st, events: events, log: log}
}

// Handle executes the update course command.
func (h *UpdateCourseHandler) Handle(ctx context.Context, cmd UpdateCourseCommand) (*UpdateCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing := h.state.CourseByID(cmd.CourseID)
	if existing == nil {
		return nil, shared.ErrCourseNotFound
	}

	updated := *existing
	if cmd.Name != "" {
		updated.Name = cmd.Name
	}
	if cmd.Credits > 0 {
		updated.Credits = cmd.Credits
	}
	if cmd.Color != "" {
		updated.Color = cmd.Color
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := h.state.UpdateCourse(&updated); err != nil {
		return nil, err
	}

	h.log.Info("course updated", logger.CourseID(updated.ID))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventCourseUpdated, updated.ID))

	return &UpdateCourseResult{Course: &updated}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE COURSE COMMAND
// Removes the course and sweeps its tasks, grades, attendance record and the
// focus sessions of the removed tasks. No orphan stays reachable afterwards.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteCourseCommand removes a course and everything referencing it.
type DeleteCourseCommand struct {
	CourseID string
}

// Validate validates the command.
func (c DeleteCourseCommand) Validate() error {
	if c.CourseID == "" {
		return shared.ErrCourseNotFound
	}
	return nil
}

// DeleteCourseResult contains the result of deleting a course.
type DeleteCourseResult struct {
	CourseID  string
	DeletedAt time.Time
}

// DeleteCourseHandler handles the DeleteCourseCommand.
type DeleteCourseHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewDeleteCourseHandler creates a new DeleteCourseHandler.
func NewDeleteCourseHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *DeleteCourseHandler {
	return &DeleteCourseHandler{state: st, events: events, log: log}
}

// Handle executes the delete course command.
func (h *DeleteCourseHandler) Handle(ctx context.Context, cmd DeleteCourseCommand) (*DeleteCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.state.DeleteCourse(cmd.CourseID); err != nil {
		return nil, err
	}

	h.log.Info("course deleted", logger.CourseID(cmd.CourseID))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventCourseDeleted, cmd.CourseID))

	return &DeleteCourseResult{CourseID: cmd.CourseID, DeletedAt: time.Now()}, nil
}
