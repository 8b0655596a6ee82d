package command

import (
	"context"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEMESTER COMMANDS
// Add, rename, delete and switch. Renaming repoints every course in the
// semester; deleting the last remaining semester is refused.
// ══════════════════════════════════════════════════════════════════════════════

// AddSemesterCommand registers a new semester.
type AddSemesterCommand struct {
	Name string
}

// Validate validates the command.
func (c AddSemesterCommand) Validate() error {
	if c.Name == "" {
		return shared.ErrSemesterNameEmpty
	}
	return nil
}

// AddSemesterHandler handles the AddSemesterCommand.
type AddSemesterHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewAddSemesterHandler creates a new AddSemesterHandler.
func NewAddSemesterHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *AddSemesterHandler {
	return &AddSemesterHandler{state: st, events: events, log: log}
}

// Handle executes the add semester command.
func (h *AddSemesterHandler) Handle(ctx context.Context, cmd AddSemesterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.state.AddSemester(cmd.Name); err != nil {
		return err
	}

	h.log.Info("semester added", logger.Semester(cmd.Name))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSemesterAdded, cmd.Name))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────

// RenameSemesterCommand renames a semester and repoints its courses.
type RenameSemesterCommand struct {
	OldName string
	NewName string
}

// Validate validates the command.
func (c RenameSemesterCommand) Validate() error {
	if c.OldName == "" || c.NewName == "" {
		return shared.ErrSemesterNameEmpty
	}
	return nil
}

// RenameSemesterHandler handles the RenameSemesterCommand.
type RenameSemesterHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewRenameSemesterHandler creates a new RenameSemesterHandler.
func NewRenameSemesterHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *RenameSemesterHandler {
	return &RenameSemesterHandler{state: st, events: events, log: log}
}

// Handle executes the rename semester command.
func (h *RenameSemesterHandler) Handle(ctx context.Context, cmd RenameSemesterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.state.RenameSemester(cmd.OldName, cmd.NewName); err != nil {
		return err
	}

	h.log.Info("semester renamed",
		logger.String("old_name", cmd.OldName),
		logger.String("new_name", cmd.NewName),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSemesterRenamed, cmd.NewName))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────

// DeleteSemesterCommand removes a semester with all its courses and their
// dependent records.
type DeleteSemesterCommand struct {
	Name string
}

// Validate validates the command.
func (c DeleteSemesterCommand) Validate() error {
	if c.Name == "" {
		return shared.ErrSemesterNameEmpty
	}
	return nil
}

// DeleteSemesterHandler handles the DeleteSemesterCommand.
type DeleteSemesterHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewDeleteSemesterHandler creates a new DeleteSemesterHandler.
func NewDeleteSemesterHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *DeleteSemesterHandler {
	return &DeleteSemesterHandler{state: st, events: events, log: log}
}

// Handle executes the delete semester command.
func (h *DeleteSemesterHandler) Handle(ctx context.Context, cmd DeleteSemesterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.state.DeleteSemester(cmd.Name); err != nil {
		return err
	}

	h.log.Info("semester deleted",
		logger.Semester(cmd.Name),
		logger.String("current", h.state.CurrentSemester()),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSemesterDeleted, cmd.Name))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────

// SwitchSemesterCommand makes an existing semester the current one. All
// semester-scoped analytics follow it immediately.
type SwitchSemesterCommand struct {
	Name string
}

// Validate validates the command.
func (c SwitchSemesterCommand) Validate() error {
	if c.Name == "" {
		return shared.ErrSemesterNameEmpty
	}
	return nil
}

// SwitchSemesterHandler handles the SwitchSemesterCommand.
type SwitchSemesterHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewSwitchSemesterHandler creates a new SwitchSemesterHandler.
func NewSwitchSemesterHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *SwitchSemesterHandler {
	return &SwitchSemesterHandler{state: st, events: events, log: log}
}

// Handle executes the switch semester command.
func (h *SwitchSemesterHandler) Handle(ctx context.Context, cmd SwitchSemesterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.state.SetCurrentSemester(cmd.Name); err != nil {
		return err
	}

	h.log.Info("semester switched", logger.Semester(cmd.Name))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventSemesterSwitched, cmd.Name))
	return nil
}
