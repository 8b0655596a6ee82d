package command

import (
	"context"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
	"github.com/acadbox/acadbox-engine/pkg/logger"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD TASK COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AddTaskCommand contains the data to create a task.
type AddTaskCommand struct {
	// Title is the task description.
	Title string

	// CourseID links the task to a course; it must exist.
	CourseID string

	// Type is one of Assignment, Exam, Reading, Project.
	Type task.Type

	// Deadline is the due date; the time-of-day part is discarded.
	Deadline time.Time

	// Effort is the estimated hours of work, 1 to 10.
	Effort int
}

// Validate validates the command.
func (c AddTaskCommand) Validate() error {
	if c.Title == "" {
		return shared.ErrTaskTitleEmpty
	}
	if c.CourseID == "" {
		return shared.ErrCourseNotFound
	}
	if !c.Type.Valid() {
		return shared.ErrInvalidTaskType
	}
	if c.Deadline.IsZero() {
		return shared.ErrTaskNoDeadline
	}
	if c.Effort < task.MinEffort || c.Effort > task.MaxEffort {
		return shared.ErrInvalidEffort
	}
	return nil
}

// AddTaskResult contains the result of adding a task.
type AddTaskResult struct {
	Task *task.Task

	// Priority is the score of the new task as of today, for immediate
	// display without a follow-up query.
	Priority float64
}

// AddTaskHandler handles the AddTaskCommand.
type AddTaskHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewAddTaskHandler creates a new AddTaskHandler.
func NewAddTaskHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *AddTaskHandler {
	return &AddTaskHandler{state: st, events: events, log: log}
}

// Handle executes the add task command.
func (h *AddTaskHandler) Handle(ctx context.Context, cmd AddTaskCommand) (*AddTaskResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := task.New(cmd.Title, cmd.CourseID, cmd.Type, cmd.Deadline, cmd.Effort)
	if err != nil {
		return nil, err
	}
	if err := h.state.AddTask(t); err != nil {
		return nil, err
	}

	priority := task.PriorityScore(t, timeutil.Today())
	h.log.Info("task added",
		logger.TaskID(t.ID),
		logger.CourseID(t.CourseID),
		logger.String("type", string(t.Type)),
		logger.Priority(priority),
	)
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventTaskAdded, t.ID))

	return &AddTaskResult{Task: t, Priority: priority}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE TASK COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CompleteTaskCommand marks a pending task as completed.
type CompleteTaskCommand struct {
	TaskID string
}

// Validate validates the command.
func (c CompleteTaskCommand) Validate() error {
	if c.TaskID == "" {
		return shared.ErrTaskNotFound
	}
	return nil
}

// CompleteTaskResult contains the result of completing a task.
type CompleteTaskResult struct {
	Task *task.Task
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *CompleteTaskHandler {
	return &CompleteTaskHandler{state: st, events: events, log: log}
}

// Handle executes the complete task command. Completing an already-completed
// task is refused and leaves the task untouched.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*CompleteTaskResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t := h.state.TaskByID(cmd.TaskID)
	if t == nil {
		return nil, shared.ErrTaskNotFound
	}
	if err := t.Complete(); err != nil {
		return nil, err
	}

	h.log.Info("task completed", logger.TaskID(t.ID), logger.CourseID(t.CourseID))
	_ = h.events.Publish(shared.NewBaseEvent(shared.EventTaskCompleted, t.ID))

	return &CompleteTaskResult{Task: t}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// RESCHEDULE OVERDUE COMMAND
// Boot-time sweep: every pending task whose deadline has passed is moved to
// tomorrow and flagged as rescheduled, so stale plans never produce negative
// urgency windows.
// ══════════════════════════════════════════════════════════════════════════════

// RescheduleOverdueCommand moves overdue pending tasks to a new date.
type RescheduleOverdueCommand struct {
	// Today anchors the overdue check; zero means the wall clock.
	Today time.Time
}

// RescheduleOverdueResult lists the tasks that were moved.
type RescheduleOverdueResult struct {
	Rescheduled []*task.Task
}

// RescheduleOverdueHandler handles the RescheduleOverdueCommand.
type RescheduleOverdueHandler struct {
	state  *state.AppState
	events shared.EventPublisher
	log    *logger.Logger
}

// NewRescheduleOverdueHandler creates a new RescheduleOverdueHandler.
func NewRescheduleOverdueHandler(st *state.AppState, events shared.EventPublisher, log *logger.Logger) *RescheduleOverdueHandler {
	return &RescheduleOverdueHandler{state: st, events: events, log: log}
}

// Handle executes the reschedule sweep.
func (h *RescheduleOverdueHandler) Handle(ctx context.Context, cmd RescheduleOverdueCommand) (*RescheduleOverdueResult, error) {
	today := cmd.Today
	if today.IsZero() {
		today = timeutil.Today()
	}
	today = timeutil.StartOfDay(today)
	tomorrow := timeutil.NextDay(today)

	result := &RescheduleOverdueResult{}
	for _, t := range h.state.Tasks() {
		if !t.IsOverdue(today) {
			continue
		}
		t.RescheduleTo(tomorrow)
		result.Rescheduled = append(result.Rescheduled, t)
		_ = h.events.Publish(shared.NewBaseEvent(shared.EventTaskRescheduled, t.ID))
	}

	if len(result.Rescheduled) > 0 {
		h.log.Info("overdue tasks rescheduled",
			logger.Int("count", len(result.Rescheduled)),
			logger.Time("rescheduled_to", tomorrow),
		)
	}
	return result, nil
}
