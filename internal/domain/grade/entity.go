// Package grade contains the Grade entity and the weighted performance
// aggregator (course stats, SPI/CPI, confidence indicator).
package grade

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acadbox/acadbox-engine/internal/domain/shared"
)

// Type classifies a graded item.
type Type string

const (
	TypeQuiz       Type = "Quiz"
	TypeAssignment Type = "Assignment"
	TypeMidSem     Type = "Mid-Sem"
	TypeEndSem     Type = "End-Sem"
)

// AllTypes lists grade types in breakdown order.
var AllTypes = []Type{TypeQuiz, TypeAssignment, TypeMidSem, TypeEndSem}

// Valid reports whether the type is one of the known grade types.
func (t Type) Valid() bool {
	switch t {
	case TypeQuiz, TypeAssignment, TypeMidSem, TypeEndSem:
		return true
	}
	return false
}

// IsExam reports whether the type is limited to one grade per course.
func (t Type) IsExam() bool {
	return t == TypeMidSem || t == TypeEndSem
}

// Grade records one scored item for a course.
type Grade struct {
	ID       string `json:"id"`
	CourseID string `json:"courseId"`
	Type     Type   `json:"type"`
	Title    string `json:"title"`

	Scored float64 `json:"scored"`
	Total  float64 `json:"total"` // always > 0

	// Weightage is this item's percent share of the course score, 0-100.
	Weightage float64 `json:"weightage"`

	Date time.Time `json:"date"`
}

// New creates a validated Grade with a fresh ID.
func New(courseID string, gradeType Type, title string, scored, total, weightage float64, date time.Time) (*Grade, error) {
	g := &Grade{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Type:      gradeType,
		Title:     strings.TrimSpace(title),
		Scored:    scored,
		Total:     total,
		Weightage: weightage,
		Date:      date,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the grade invariants.
func (g *Grade) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return shared.ErrGradeTitleEmpty
	}
	if strings.TrimSpace(g.CourseID) == "" {
		return shared.ErrCourseNotFound
	}
	if !g.Type.Valid() {
		return shared.ErrInvalidGradeType
	}
	if g.Total <= 0 {
		return shared.ErrInvalidGradeTotal
	}
	if g.Scored < 0 {
		return shared.ErrValueOutOfRange
	}
	if g.Weightage < 0 || g.Weightage > 100 {
		return shared.ErrInvalidWeightage
	}
	return nil
}

// Ratio returns scored/total.
func (g *Grade) Ratio() float64 {
	if g.Total <= 0 {
		return 0
	}
	return g.Scored / g.Total
}
