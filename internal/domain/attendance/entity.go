// Package attendance contains the per-course attendance record and the risk
// analyzer with its forward-looking projections.
package attendance

import (
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
)

// Record is the attendance tally for one course. At most one record exists
// per course; a missing record reads as {0, 0}: safe, no data.
type Record struct {
	CourseID string `json:"courseId"`
	Attended int    `json:"attended"`
	Total    int    `json:"total"`
}

// Validate checks the record invariants.
func (r *Record) Validate() error {
	if r.Total < 0 || r.Attended < 0 || r.Attended > r.Total {
		return shared.ErrInvalidAttendance
	}
	return nil
}

// Percentage returns the attended share, 0-100. No data reads as 100.
func (r *Record) Percentage() float64 {
	if r.Total == 0 {
		return 100
	}
	return 100 * float64(r.Attended) / float64(r.Total)
}
