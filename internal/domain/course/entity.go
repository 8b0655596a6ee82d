// Package course contains the Course aggregate and semester rules.
// A Course is the aggregation root for its semester: tasks, grades, attendance
// records and focus sessions reference it by ID (weak back-references), and
// deleting a course sweeps all of them.
package course

import (
	"strings"

	"github.com/google/uuid"

	"github.com/acadbox/acadbox-engine/internal/domain/shared"
)

// Course represents a single enrolled course.
type Course struct {
	// ID is the opaque course identifier.
	ID string `json:"id"`

	// Name is the display name, e.g. "Data Structures".
	Name string `json:"name"`

	// Credits is the credit weight used by SPI/CPI; always positive.
	Credits int `json:"credits"`

	// Color is a presentation hint carried for the host, e.g. "#3b82f6".
	Color string `json:"color"`

	// Semester is the key of the semester this course belongs to.
	Semester string `json:"semester"`
}

// New creates a validated Course with a fresh ID.
func New(name string, credits int, color, semester string) (*Course, error) {
	c := &Course{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Credits:  credits,
		Color:    color,
		Semester: semester,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the course invariants.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.ErrCourseNameEmpty
	}
	if c.Credits <= 0 {
		return shared.ErrInvalidCredits
	}
	if strings.TrimSpace(c.Semester) == "" {
		return shared.ErrSemesterNameEmpty
	}
	return nil
}

// SemesterList is the ordered, non-empty set of known semesters with exactly
// one marked current.
type SemesterList struct {
	Names   []string `json:"names"`
	Current string   `json:"current"`
}

// DefaultSemesterName seeds a fresh or reset state.
const DefaultSemesterName = "Semester 1"

// NewSemesterList returns the seed semester set.
func NewSemesterList() SemesterList {
	return SemesterList{
		Names:   []string{DefaultSemesterName},
		Current: DefaultSemesterName,
	}
}

// Contains reports whether the named semester exists.
func (s SemesterList) Contains(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends a new semester. Duplicates are refused.
func (s *SemesterList) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrSemesterNameEmpty
	}
	if s.Contains(name) {
		return shared.ErrSemesterExists
	}
	s.Names = append(s.Names, name)
	return nil
}

// Rename changes a semester key in place, repointing Current if needed.
// The caller is responsible for propagating the rename to courses.
func (s *SemesterList) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return shared.ErrSemesterNameEmpty
	}
	if newName == oldName {
		return nil
	}
	if !s.Contains(oldName) {
		return shared.ErrSemesterNotFound
	}
	if s.Contains(newName) {
		return shared.ErrSemesterExists
	}
	for i, n := range s.Names {
		if n == oldName {
			s.Names[i] = newName
		}
	}
	if s.Current == oldName {
		s.Current = newName
	}
	return nil
}

// Remove deletes a semester. Removing the last remaining semester is refused;
// if the current semester is removed, Current moves to the first survivor.
func (s *SemesterList) Remove(name string) error {
	if !s.Contains(name) {
		return shared.ErrSemesterNotFound
	}
	if len(s.Names) <= 1 {
		return shared.ErrLastSemester
	}
	kept := s.Names[:0]
	for _, n := range s.Names {
		if n != name {
			kept = append(kept, n)
		}
	}
	s.Names = kept
	if s.Current == name {
		s.Current = s.Names[0]
	}
	return nil
}

// SetCurrent switches the current semester.
func (s *SemesterList) SetCurrent(name string) error {
	if !s.Contains(name) {
		return shared.ErrSemesterNotFound
	}
	s.Current = name
	return nil
}
