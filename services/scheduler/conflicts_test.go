package scheduler

import (
	"testing"

	"courseschedule_go/models"
)

func conflictSnapshot(t *testing.T, sessions ...models.Session) *Snapshot {
	t.Helper()
	snap := &Snapshot{
		Program: models.Program{
			EntityModel: models.EntityModel{ID: "p2025"},
			StartDate:   "2025-09-01",
			TotalWeeks:  3,
		},
		Blocks: []models.Block{mkBlock("cardio", 1, 1, 2)},
		Instructors: []models.Instructor{
			{EntityModel: models.EntityModel{ID: "i001"}, Name: "Yilmaz", Title: "Prof. Dr."},
		},
		Sessions: sessions,
	}
	start, err := ParseStartDate(snap.Program.StartDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap.Calendar, err = GenerateCalendar(start, snap.Program.TotalWeeks, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return snap
}

func slotSession(id, subgroup string) models.Session {
	return models.Session{
		EntityModel:   models.EntityModel{ID: id},
		BlockID:       "cardio",
		WeekOfBlock:   1,
		DayOfWeek:     0,
		Time:          "08:40",
		Subgroup:      subgroup,
		InstructorIDs: models.StringList{"i001"},
	}
}

func TestFindConflictsSubgroupRules(t *testing.T) {
	tests := []struct {
		name      string
		subgroups [2]string
		want      int
	}{
		{name: "parallel cohorts do not collide", subgroups: [2]string{"A", "B"}, want: 0},
		{name: "same cohort collides", subgroups: [2]string{"A", "A"}, want: 1},
		{name: "all vs all collides", subgroups: [2]string{"all", "all"}, want: 1},
		{name: "all vs label collides", subgroups: [2]string{"all", "B"}, want: 1},
		{name: "label vs all collides", subgroups: [2]string{"A", "all"}, want: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			snap := conflictSnapshot(t,
				slotSession("s1", tc.subgroups[0]),
				slotSession("s2", tc.subgroups[1]),
			)
			reports := FindConflicts(snap)
			if len(reports) != tc.want {
				t.Fatalf("got %d conflicts, want %d: %+v", len(reports), tc.want, reports)
			}
			if tc.want == 1 {
				r := reports[0]
				if r.InstructorID != "i001" || r.SessionID != "s2" {
					t.Errorf("report = %+v, want instructor i001 on s2", r)
				}
				if r.Date != "2025-09-01" || r.Time != "08:40" {
					t.Errorf("report slot = %s %s, want 2025-09-01 08:40", r.Date, r.Time)
				}
				if r.Instructor != "Prof. Dr. Yilmaz" {
					t.Errorf("instructor name = %s, want Prof. Dr. Yilmaz", r.Instructor)
				}
			}
		})
	}
}

func TestFindConflictsDuplicateInstructorIDs(t *testing.T) {
	// An instructor listed twice on one session occupies the slot once;
	// the session must not conflict with itself.
	solo := slotSession("s1", "all")
	solo.InstructorIDs = models.StringList{"i001", "i001"}

	snap := conflictSnapshot(t, solo)
	if reports := FindConflicts(snap); len(reports) != 0 {
		t.Fatalf("session conflicted with itself: %+v", reports)
	}

	// A genuine second session in the slot is still reported exactly once
	snap = conflictSnapshot(t, solo, slotSession("s2", "all"))
	reports := FindConflicts(snap)
	if len(reports) != 1 {
		t.Fatalf("got %d conflicts, want 1: %+v", len(reports), reports)
	}
	if reports[0].SessionID != "s2" {
		t.Errorf("report session = %s, want s2", reports[0].SessionID)
	}
}

func TestFindConflictsOnePerOccupantNotPerPair(t *testing.T) {
	// Three sessions in the same slot: the first establishes it, the
	// second and third are each reported once - two reports, not three
	// pairs.
	snap := conflictSnapshot(t,
		slotSession("s1", "all"),
		slotSession("s2", "all"),
		slotSession("s3", "all"),
	)

	reports := FindConflicts(snap)
	if len(reports) != 2 {
		t.Fatalf("got %d conflicts, want 2", len(reports))
	}
	if reports[0].SessionID != "s2" || reports[1].SessionID != "s3" {
		t.Errorf("report order = %s,%s, want s2,s3", reports[0].SessionID, reports[1].SessionID)
	}
}

func TestFindConflictsDistinctSlots(t *testing.T) {
	other := slotSession("s2", "all")
	other.Time = "10:40"
	third := slotSession("s3", "all")
	third.DayOfWeek = 1

	snap := conflictSnapshot(t, slotSession("s1", "all"), other, third)
	if reports := FindConflicts(snap); len(reports) != 0 {
		t.Fatalf("got %d conflicts for distinct slots, want 0: %+v", len(reports), reports)
	}
}

func TestFindConflictsSkipsUnresolved(t *testing.T) {
	orphan := slotSession("s2", "all")
	orphan.BlockID = "missing"

	snap := conflictSnapshot(t, slotSession("s1", "all"), orphan)
	if reports := FindConflicts(snap); len(reports) != 0 {
		t.Fatalf("unresolved session produced conflicts: %+v", reports)
	}
}

func TestFindConflictsDeterministicOrder(t *testing.T) {
	// Sessions are visited in id order regardless of slice order
	snap := conflictSnapshot(t,
		slotSession("s3", "all"),
		slotSession("s1", "all"),
		slotSession("s2", "all"),
	)

	reports := FindConflicts(snap)
	if len(reports) != 2 {
		t.Fatalf("got %d conflicts, want 2", len(reports))
	}
	if reports[0].SessionID != "s2" || reports[1].SessionID != "s3" {
		t.Errorf("report order = %s,%s, want s2,s3", reports[0].SessionID, reports[1].SessionID)
	}
}
