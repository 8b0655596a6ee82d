// Package state holds the engine's explicit application-state struct: the
// in-memory Record Store plus the streak and settings singletons. There are
// no hidden statics; the host creates one AppState and passes it to every
// command and query handler.
//
// AppState stores and retrieves, nothing more: all analytics are pure
// functions in the domain packages, recomputed from current contents on each
// read. One RWMutex serializes writers so a multi-threaded host stays
// consistent; composite sweeps (course delete, semester delete, reset) run
// under a single lock acquisition.
package state

import (
	"sync"
	"time"

	"github.com/acadbox/acadbox-engine/internal/domain/attendance"
	"github.com/acadbox/acadbox-engine/internal/domain/course"
	"github.com/acadbox/acadbox-engine/internal/domain/focus"
	"github.com/acadbox/acadbox-engine/internal/domain/grade"
	"github.com/acadbox/acadbox-engine/internal/domain/shared"
	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
	"github.com/acadbox/acadbox-engine/internal/domain/streak"
	"github.com/acadbox/acadbox-engine/internal/domain/task"
)

// AppState is the Record Store. Collections keep insertion order; tie-breaks
// in the scheduler and the weak-subject pick depend on it.
type AppState struct {
	mu sync.RWMutex

	courses    []*course.Course
	semesters  course.SemesterList
	tasks      []*task.Task
	grades     []*grade.Grade
	attendance []*attendance.Record
	sessions   []*focus.Session

	streak   *streak.State
	active   *focus.ActiveSession
	settings shared.Settings
}

// New creates an AppState with the default seed: one semester, empty
// collections, default settings, zero streak.
func New() *AppState {
	return &AppState{
		semesters: course.NewSemesterList(),
		streak:    streak.NewState(),
		settings:  shared.DefaultSettings(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Courses & semesters
// ─────────────────────────────────────────────────────────────────────────────

// Courses returns all courses in insertion order.
func (s *AppState) Courses() []*course.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*course.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// CoursesBySemester returns the courses of one semester, in insertion order.
func (s *AppState) CoursesBySemester(semester string) []*course.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*course.Course
	for _, c := range s.courses {
		if c.Semester == semester {
			out = append(out, c)
		}
	}
	return out
}

// CourseByID returns the course or nil.
func (s *AppState) CourseByID(id string) *course.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courseByID(id)
}

func (s *AppState) courseByID(id string) *course.Course {
	for _, c := range s.courses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// AddCourse appends a course. The semester must exist.
func (s *AppState) AddCourse(c *course.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.semesters.Contains(c.Semester) {
		return shared.ErrSemesterNotFound
	}
	s.courses = append(s.courses, c)
	return nil
}

// UpdateCourse replaces the stored course with the same ID.
func (s *AppState) UpdateCourse(c *course.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.courses {
		if existing.ID == c.ID {
			s.courses[i] = c
			return nil
		}
	}
	return shared.ErrCourseNotFound
}

// DeleteCourse removes a course and sweeps every dependent record: its
// tasks, the focus sessions of those tasks, its grades and its attendance
// record. The sweep is atomic under the state lock.
func (s *AppState) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courseByID(id) == nil {
		return shared.ErrCourseNotFound
	}

	kept := s.courses[:0]
	for _, c := range s.courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.courses = kept
	s.sweepCourseRefs(map[string]bool{id: true})
	return nil
}

// sweepCourseRefs is the referential-integrity sweep: removes tasks, grades,
// attendance records and (transitively, via task IDs) focus sessions of the
// given courses. Caller holds the write lock.
func (s *AppState) sweepCourseRefs(courseIDs map[string]bool) {
	deletedTasks := make(map[string]bool)
	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if courseIDs[t.CourseID] {
			deletedTasks[t.ID] = true
			continue
		}
		keptTasks = append(keptTasks, t)
	}
	s.tasks = keptTasks

	keptGrades := s.grades[:0]
	for _, g := range s.grades {
		if !courseIDs[g.CourseID] {
			keptGrades = append(keptGrades, g)
		}
	}
	s.grades = keptGrades

	keptAttendance := s.attendance[:0]
	for _, r := range s.attendance {
		if !courseIDs[r.CourseID] {
			keptAttendance = append(keptAttendance, r)
		}
	}
	s.attendance = keptAttendance

	keptSessions := s.sessions[:0]
	for _, sess := range s.sessions {
		if !deletedTasks[sess.TaskID] {
			keptSessions = append(keptSessions, sess)
		}
	}
	s.sessions = keptSessions
}

// Semesters returns a copy of the semester list.
func (s *AppState) Semesters() course.SemesterList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.semesters
	out.Names = make([]string, len(s.semesters.Names))
	copy(out.Names, s.semesters.Names)
	return out
}

// CurrentSemester returns the current semester key.
func (s *AppState) CurrentSemester() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.semesters.Current
}

// AddSemester registers a new semester.
func (s *AppState) AddSemester(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.semesters.Add(name)
}

// SetCurrentSemester switches the current semester.
func (s *AppState) SetCurrentSemester(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.semesters.SetCurrent(name)
}

// RenameSemester renames a semester and repoints every course in it.
func (s *AppState) RenameSemester(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.semesters.Rename(oldName, newName); err != nil {
		return err
	}
	for _, c := range s.courses {
		if c.Semester == oldName {
			c.Semester = newName
		}
	}
	return nil
}

// DeleteSemester removes a semester together with its courses and all their
// dependents. Deleting the last remaining semester is refused.
func (s *AppState) DeleteSemester(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.semesters.Remove(name); err != nil {
		return err
	}

	courseIDs := make(map[string]bool)
	kept := s.courses[:0]
	for _, c := range s.courses {
		if c.Semester == name {
			courseIDs[c.ID] = true
			continue
		}
		kept = append(kept, c)
	}
	s.courses = kept
	if len(courseIDs) > 0 {
		s.sweepCourseRefs(courseIDs)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Tasks
// ─────────────────────────────────────────────────────────────────────────────

// Tasks returns all tasks in insertion order.
func (s *AppState) Tasks() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// TasksBySemester returns tasks whose course belongs to the semester.
func (s *AppState) TasksBySemester(semester string) []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*task.Task
	for _, t := range s.tasks {
		if c := s.courseByID(t.CourseID); c != nil && c.Semester == semester {
			out = append(out, t)
		}
	}
	return out
}

// TaskByID returns the task or nil.
func (s *AppState) TaskByID(id string) *task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddTask appends a task. The course must exist.
func (s *AppState) AddTask(t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courseByID(t.CourseID) == nil {
		return shared.ErrCourseNotFound
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Grades
// ─────────────────────────────────────────────────────────────────────────────

// Grades returns all grades in insertion order.
func (s *AppState) Grades() []*grade.Grade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*grade.Grade, len(s.grades))
	copy(out, s.grades)
	return out
}

// GradesByCourse returns one course's grades in insertion order.
func (s *AppState) GradesByCourse(courseID string) []*grade.Grade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gradesByCourse(courseID)
}

func (s *AppState) gradesByCourse(courseID string) []*grade.Grade {
	var out []*grade.Grade
	for _, g := range s.grades {
		if g.CourseID == courseID {
			out = append(out, g)
		}
	}
	return out
}

// GradeByID returns the grade or nil.
func (s *AppState) GradeByID(id string) *grade.Grade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.grades {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// AddGrade appends a grade. The course must exist.
func (s *AppState) AddGrade(g *grade.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courseByID(g.CourseID) == nil {
		return shared.ErrCourseNotFound
	}
	s.grades = append(s.grades, g)
	return nil
}

// UpdateGrade replaces the stored grade with the same ID.
func (s *AppState) UpdateGrade(g *grade.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.grades {
		if existing.ID == g.ID {
			s.grades[i] = g
			return nil
		}
	}
	return shared.ErrGradeNotFound
}

// DeleteGrade removes a grade.
func (s *AppState) DeleteGrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.grades {
		if g.ID == id {
			s.grades = append(s.grades[:i], s.grades[i+1:]...)
			return nil
		}
	}
	return shared.ErrGradeNotFound
}

// ─────────────────────────────────────────────────────────────────────────────
// Attendance
// ─────────────────────────────────────────────────────────────────────────────

// AttendanceRecords returns all records in insertion order.
func (s *AppState) AttendanceRecords() []*attendance.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*attendance.Record, len(s.attendance))
	copy(out, s.attendance)
	return out
}

// AttendanceFor returns the course's record, or nil for "no data".
func (s *AppState) AttendanceFor(courseID string) *attendance.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.attendance {
		if r.CourseID == courseID {
			return r
		}
	}
	return nil
}

// SetAttendance upserts the single record of a course.
func (s *AppState) SetAttendance(r *attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courseByID(r.CourseID) == nil {
		return shared.ErrCourseNotFound
	}
	for i, existing := range s.attendance {
		if existing.CourseID == r.CourseID {
			s.attendance[i] = r
			return nil
		}
	}
	s.attendance = append(s.attendance, r)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Focus sessions & the active session singleton
// ─────────────────────────────────────────────────────────────────────────────

// Sessions returns all recorded focus sessions in insertion order.
func (s *AppState) Sessions() []*focus.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*focus.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// AddSession appends a recorded session. Dangling task references are
// allowed; analytics exclude them on lookup miss.
func (s *AppState) AddSession(sess *focus.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sess)
}

// ActiveSession returns the singleton timed session, or nil.
func (s *AppState) ActiveSession() *focus.ActiveSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActiveSession installs a new active session. Starting over a live one
// is refused.
func (s *AppState) SetActiveSession(a *focus.ActiveSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.State == focus.StateActive {
		return shared.ErrSessionAlreadyActive
	}
	s.active = a
	return nil
}

// ClearActiveSession drops the ended singleton.
func (s *AppState) ClearActiveSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Singletons
// ─────────────────────────────────────────────────────────────────────────────

// Streak returns the live streak state. The streak tracker is the single
// writer; everyone else must treat it as read-only.
func (s *AppState) Streak() *streak.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streak
}

// Settings returns the current preferences.
func (s *AppState) Settings() shared.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings applies a partial settings patch.
func (s *AppState) UpdateSettings(patch shared.SettingsPatch) shared.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = patch.Apply(s.settings)
	return s.settings
}

// ResetAll clears every collection and reseeds the defaults: one semester,
// default settings, zero streak.
func (s *AppState) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = nil
	s.tasks = nil
	s.grades = nil
	s.attendance = nil
	s.sessions = nil
	s.active = nil
	s.semesters = course.NewSemesterList()
	s.streak = streak.NewState()
	s.settings = shared.DefaultSettings()
}

// ─────────────────────────────────────────────────────────────────────────────
// Snapshot boundary
// ─────────────────────────────────────────────────────────────────────────────

// BuildSnapshot exports the whole state as one document.
func (s *AppState) BuildSnapshot(now time.Time) *snapshot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &snapshot.Snapshot{
		Courses:    make([]*course.Course, len(s.courses)),
		Tasks:      make([]*task.Task, len(s.tasks)),
		Grades:     make([]*grade.Grade, len(s.grades)),
		Attendance: make([]*attendance.Record, len(s.attendance)),
		Sessions:   make([]*focus.Session, len(s.sessions)),
		Streak:     s.streak.Clone(),
		Settings:   s.settings,
		TakenAt:    now,
	}
	copy(snap.Courses, s.courses)
	copy(snap.Tasks, s.tasks)
	copy(snap.Grades, s.grades)
	copy(snap.Attendance, s.attendance)
	copy(snap.Sessions, s.sessions)

	snap.Semesters = s.semesters
	snap.Semesters.Names = make([]string, len(s.semesters.Names))
	copy(snap.Semesters.Names, s.semesters.Names)

	return snap
}

// RestoreSnapshot replaces the whole state with a loaded document.
// Defensive defaults cover documents from older exports: a missing semester
// list or streak falls back to the seed values.
func (s *AppState) RestoreSnapshot(snap *snapshot.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = snap.Courses
	s.tasks = snap.Tasks
	s.grades = snap.Grades
	s.attendance = snap.Attendance
	s.sessions = snap.Sessions
	s.active = nil

	if len(snap.Semesters.Names) == 0 {
		s.semesters = course.NewSemesterList()
	} else {
		s.semesters = snap.Semesters
		if !s.semesters.Contains(s.semesters.Current) {
			s.semesters.Current = s.semesters.Names[0]
		}
	}

	if snap.Streak != nil {
		s.streak = snap.Streak
	} else {
		s.streak = streak.NewState()
	}

	if snap.Settings == (shared.Settings{}) {
		s.settings = shared.DefaultSettings()
	} else {
		s.settings = snap.Settings
	}
}
