// Package scheduler derives the concrete weekly course schedule from the
// abstract dataset (program, blocks, courses, instructors, sessions).
// Everything in here is a pure computation over in-memory snapshots: no
// database, network or clock access, and inputs are never mutated in
// place. Callers load the dataset, hand a Snapshot in, and decide what
// to do with the returned collections.
package scheduler

import (
	"sort"

	"courseschedule_go/models"
)

// DefaultTotalWeeks is used by callers when a program has no week count
// configured. A present-but-invalid value is rejected instead.
const DefaultTotalWeeks = 14

// DaysPerWeek is the number of teaching days in a week (Monday..Friday)
const DaysPerWeek = 5

var weekdayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DayRecord is one teaching day of the generated calendar
type DayRecord struct {
	Day       string `json:"day"`     // weekday name
	Date      string `json:"date"`    // ISO YYYY-MM-DD
	Display   string `json:"display"` // DD.MM.YYYY
	IsHoliday bool   `json:"is_holiday"`
}

// WeekRecord is one calendar week with its five teaching days
type WeekRecord struct {
	WeekNumber   int         `json:"week_number"` // 1-based
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	StartDisplay string      `json:"start_display"`
	EndDisplay   string      `json:"end_display"`
	Days         []DayRecord `json:"days"`
}

// Snapshot is an immutable view of the current dataset plus the calendar
// generated from the active program's parameters. Mutations (block
// reorder, session edits) must produce a fresh snapshot before the next
// projection or validation run.
type Snapshot struct {
	Program     models.Program
	Blocks      []models.Block
	Courses     []models.Course
	Instructors []models.Instructor
	Sessions    []models.Session
	Calendar    []WeekRecord
}

// BlockByID looks up a block in the snapshot
func (s *Snapshot) BlockByID(id string) (models.Block, bool) {
	return findBlock(s.Blocks, id)
}

// InstructorByID looks up an instructor in the snapshot
func (s *Snapshot) InstructorByID(id string) (models.Instructor, bool) {
	for _, inst := range s.Instructors {
		if inst.ID == id {
			return inst, true
		}
	}
	return models.Instructor{}, false
}

// CourseName resolves a course id to its name, falling back to the raw
// id for courses that were deleted out from under a session.
func (s *Snapshot) CourseName(id string) string {
	for _, c := range s.Courses {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// InstructorNames resolves instructor ids to display names ("title name"),
// keeping the session's listed order.
func (s *Snapshot) InstructorNames(ids models.StringList) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if inst, ok := s.InstructorByID(id); ok {
			names = append(names, inst.DisplayName())
		} else {
			names = append(names, id)
		}
	}
	return names
}

// sortedSessions returns the snapshot's sessions ordered by id so that
// projection and validation results are reproducible regardless of how
// the caller loaded them.
func (s *Snapshot) sortedSessions() []models.Session {
	sessions := make([]models.Session, len(s.Sessions))
	copy(sessions, s.Sessions)
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions
}

func findBlock(blocks []models.Block, id string) (models.Block, bool) {
	for _, b := range blocks {
		if b.ID == id {
			return b, true
		}
	}
	return models.Block{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
