package scheduler

import (
	"fmt"

	"courseschedule_go/models"
)

// ConflictReport flags an instructor double-booked at a resolved
// date+time slot. Advisory only - nothing is blocked or auto-resolved.
type ConflictReport struct {
	InstructorID string `json:"instructor_id"`
	Instructor   string `json:"instructor"`
	Date         string `json:"date"` // ISO
	Display      string `json:"display"`
	Time         string `json:"time"`
	Subgroup     string `json:"subgroup"`
	SessionID    string `json:"session_id"`
	Message      string `json:"message"`
}

// FindConflicts scans every resolvable session and reports instructors
// occupying overlapping slots. Two sessions at the same date+time do NOT
// collide when they target different subgroups (parallel cohorts are
// legitimate); the same subgroup, or either side being "all", does.
//
// The first occupant of a slot establishes it; each later colliding
// occupant yields exactly one report, so a double booking produces one
// entry rather than one per session pair. Sessions are visited in id
// order, making the report sequence deterministic.
func FindConflicts(snap *Snapshot) []ConflictReport {
	type occupant struct {
		subgroup string
	}
	slots := make(map[string][]occupant)
	reports := []ConflictReport{}

	for _, session := range snap.sortedSessions() {
		res, ok := Resolve(session, snap.Blocks, snap.Calendar)
		if !ok {
			continue
		}

		// Instructor ids are a set; a duplicated id on one session must
		// not make it collide with itself.
		for _, instructorID := range session.InstructorIDs.Dedupe() {
			key := instructorID + "|" + res.Day.Date + "|" + session.Time

			collides := false
			for _, occ := range slots[key] {
				if subgroupsOverlap(occ.subgroup, session.Subgroup) {
					collides = true
					break
				}
			}
			if collides {
				name := instructorID
				if inst, ok := snap.InstructorByID(instructorID); ok {
					name = inst.DisplayName()
				}
				reports = append(reports, ConflictReport{
					InstructorID: instructorID,
					Instructor:   name,
					Date:         res.Day.Date,
					Display:      res.Day.Display,
					Time:         session.Time,
					Subgroup:     session.Subgroup,
					SessionID:    session.ID,
					Message:      fmt.Sprintf("%s has multiple sessions at %s %s", name, res.Day.Display, session.Time),
				})
			}
			slots[key] = append(slots[key], occupant{subgroup: session.Subgroup})
		}
	}

	return reports
}

// subgroupsOverlap implements the cohort overlap rule: "all" meets every
// label, distinct labels run in parallel without meeting.
func subgroupsOverlap(a, b string) bool {
	if a == models.SubgroupAll || b == models.SubgroupAll {
		return true
	}
	return a == b
}
