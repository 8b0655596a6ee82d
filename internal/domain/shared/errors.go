// Package shared contains common domain types, errors and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrRefused         = errors.New("operation refused")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "task", "grade", "semester"
	Op      string // Operation that failed, e.g., "Add", "Delete"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// Course domain errors
var (
	ErrCourseNotFound    = NewDomainError("course", "Find", ErrNotFound, "course not found")
	ErrCourseNameEmpty   = NewDomainError("course", "Validate", ErrEmptyValue, "course name is required")
	ErrInvalidCredits    = NewDomainError("course", "Validate", ErrValueOutOfRange, "credits must be positive")
	ErrSemesterNotFound  = NewDomainError("semester", "Find", ErrNotFound, "semester not found")
	ErrSemesterExists    = NewDomainError("semester", "Add", ErrAlreadyExists, "semester already exists")
	ErrLastSemester      = NewDomainError("semester", "Delete", ErrRefused, "cannot delete the last semester")
	ErrSemesterNameEmpty = NewDomainError("semester", "Validate", ErrEmptyValue, "semester name is required")
)

// Task domain errors
var (
	ErrTaskNotFound     = NewDomainError("task", "Find", ErrNotFound, "task not found")
	ErrTaskTitleEmpty   = NewDomainError("task", "Validate", ErrEmptyValue, "task title is required")
	ErrTaskNoDeadline   = NewDomainError("task", "Validate", ErrEmptyValue, "task deadline is required")
	ErrInvalidEffort    = NewDomainError("task", "Validate", ErrValueOutOfRange, "effort must be between 1 and 10 hours")
	ErrInvalidTaskType  = NewDomainError("task", "Validate", ErrInvalidInput, "unknown task type")
	ErrTaskCompleted    = NewDomainError("task", "Complete", ErrInvalidState, "task already completed")
)

// Grade domain errors
var (
	ErrGradeNotFound      = NewDomainError("grade", "Find", ErrNotFound, "grade not found")
	ErrGradeTitleEmpty    = NewDomainError("grade", "Validate", ErrEmptyValue, "grade title is required")
	ErrInvalidGradeType   = NewDomainError("grade", "Validate", ErrInvalidInput, "unknown grade type")
	ErrInvalidGradeTotal  = NewDomainError("grade", "Validate", ErrValueOutOfRange, "grade total must be positive")
	ErrInvalidWeightage   = NewDomainError("grade", "Validate", ErrValueOutOfRange, "weightage must be between 0 and 100")
	ErrDuplicateExamGrade = NewDomainError("grade", "Add", ErrRefused, "course already has a grade of this exam type")
)

// Attendance domain errors
var (
	ErrInvalidAttendance = NewDomainError("attendance", "Validate", ErrValueOutOfRange, "attended cannot exceed total")
)

// Focus session domain errors
var (
	ErrSessionNotFound      = NewDomainError("focus", "FindSession", ErrNotFound, "session not found")
	ErrSessionAlreadyActive = NewDomainError("focus", "StartSession", ErrAlreadyExists, "a session is already active")
	ErrSessionAlreadyEnded  = NewDomainError("focus", "EndSession", ErrInvalidState, "session already ended")
	ErrNoActiveSession      = NewDomainError("focus", "EndSession", ErrNotFound, "no active session")
	ErrInvalidDuration      = NewDomainError("focus", "Validate", ErrValueOutOfRange, "duration must be positive")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRefused checks if the error is a locally-rejected domain condition.
// Commands treat refused inputs as no-ops rather than failures.
func IsRefused(err error) bool {
	return errors.Is(err, ErrRefused)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}
