// Package snapshot defines the persistence boundary: the full engine state as
// one serializable document, and the Store contract the host wires to a
// medium (file, Postgres, Redis). The engine itself never owns the medium.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/acadbox/acadbox-engine/internal/domain/attendance"
	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/internal/domain/streak"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
)

// ErrEmpty is returned by Load when the medium has no snapshot yet; the
// caller seeds the default state instead.
var ErrEmpty = errors.New("snapshot: no snapshot stored")

// Snapshot is the flat export document: every collection plus the singletons.
type Snapshot struct {
	Courses    []*course.Course     `json:"courses"`
	Semesters  course.SemesterList  `json:"semesters"`
	Tasks      []*task.Task         `json:"tasks"`
	Grades     []*grade.Grade       `json:"grades"`
	Attendance []*attendance.Record `json:"attendance"`
	Sessions   []*focus.Session     `json:"focusSessions"`
	Streak     *streak.State        `json:"streak"`
	Settings   shared.Settings      `json:"settings"`

	// TakenAt stamps when the snapshot was built.
	TakenAt time.Time `json:"takenAt"`
}

// Marshal serializes the snapshot as compact JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a snapshot document.
func Unmarshal(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Store persists and restores full snapshots.
type Store interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the most recent snapshot, or ErrEmpty.
	Load(ctx context.Context) (*Snapshot, error)

	// Close releases the underlying medium.
	Close() error
}

// ExportFileName is the compatibility naming convention for user-facing
// exports: acadbox_data_<ISO-date>.json.
func ExportFileName(date time.Time) string {
	return fmt.Sprintf("acadbox_data_%s.json", date.Format("2006-01-02"))
}
