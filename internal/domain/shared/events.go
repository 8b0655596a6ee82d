package shared

import "time"

// EventType represents the type of domain event.
type EventType string

// Domain event types. Every successful mutating command publishes exactly one
// of these; the persistence collaborator subscribes to all of them as its
// "state changed" notification.
const (
	// Course events
	EventCourseAdded   EventType = "course.added"
	EventCourseUpdated EventType = "course.updated"
	EventCourseDeleted EventType = "course.deleted"

	// Task events
	EventTaskAdded       EventType = "task.added"
	EventTaskCompleted   EventType = "task.completed"
	EventTaskRescheduled EventType = "task.rescheduled"

	// Grade events
	EventGradeAdded   EventType = "grade.added"
	EventGradeUpdated EventType = "grade.updated"
	EventGradeDeleted EventType = "grade.deleted"

	// Attendance events
	EventAttendanceUpdated EventType = "attendance.updated"

	// Focus session events
	EventSessionStarted EventType = "focus.session_started"
	EventSessionBroken  EventType = "focus.session_broken"
	EventSessionEnded   EventType = "focus.session_ended"

	// Streak events
	EventStreakLogged  EventType = "streak.logged"
	EventStreakCracked EventType = "streak.cracked"

	// Semester events
	EventSemesterAdded    EventType = "semester.added"
	EventSemesterRenamed  EventType = "semester.renamed"
	EventSemesterDeleted  EventType = "semester.deleted"
	EventSemesterSwitched EventType = "semester.switched"

	// System events
	EventSettingsUpdated EventType = "settings.updated"
	EventStateReset      EventType = "state.reset"
	EventStateImported   EventType = "state.imported"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the entity that produced this event.
	AggregateID() string
}

// EventHandler processes a published event.
type EventHandler func(event Event) error

// EventPublisher delivers domain events to subscribers. Command handlers
// publish through this interface; the in-memory bus implements it.
type EventPublisher interface {
	Publish(event Event) error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}
