package scheduler

import (
	"testing"

	"courseschedule_go/models"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	blocks := []models.Block{
		mkBlock("cardio", 1, 1, 2),
		mkBlock("neuro", 2, 3),
	}
	snap := &Snapshot{
		Program: models.Program{
			EntityModel: models.EntityModel{ID: "p2025"},
			StartDate:   "2025-09-01",
			TotalWeeks:  3,
		},
		Blocks: blocks,
		Courses: []models.Course{
			{EntityModel: models.EntityModel{ID: "c001"}, Name: "ECG Basics", BlockID: "cardio"},
			{EntityModel: models.EntityModel{ID: "c002"}, Name: "Stroke Workup", BlockID: "neuro"},
		},
		Instructors: []models.Instructor{
			{EntityModel: models.EntityModel{ID: "i001"}, Name: "Yilmaz", Title: "Prof. Dr."},
			{EntityModel: models.EntityModel{ID: "i002"}, Name: "Demir", Title: "Doç. Dr."},
		},
		Sessions: []models.Session{
			{EntityModel: models.EntityModel{ID: "s1"}, BlockID: "cardio", WeekOfBlock: 1, DayOfWeek: 0, Time: "10:40", CourseID: "c001", InstructorIDs: models.StringList{"i001"}, Type: "lecture", Subgroup: "all", Location: "Pendik"},
			{EntityModel: models.EntityModel{ID: "s2"}, BlockID: "cardio", WeekOfBlock: 1, DayOfWeek: 0, Time: "08:40", CourseID: "c001", InstructorIDs: models.StringList{"i002"}, Type: "practice", Subgroup: "all", Location: "Pendik"},
			{EntityModel: models.EntityModel{ID: "s3"}, BlockID: "neuro", WeekOfBlock: 1, DayOfWeek: 2, Time: "09:40", CourseID: "c002", InstructorIDs: models.StringList{"i001"}, Type: "lecture", Subgroup: "all", Location: "Basibuyuk"},
			{EntityModel: models.EntityModel{ID: "s4"}, BlockID: "missing", WeekOfBlock: 1, DayOfWeek: 0, Time: "13:40", CourseID: "c001"},
		},
	}

	start, err := ParseStartDate(snap.Program.StartDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap.Calendar, err = GenerateCalendar(start, snap.Program.TotalWeeks, snap.Program.Holidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return snap
}

func TestProjectGroupsAndOrders(t *testing.T) {
	snap := testSnapshot(t)

	projection := Project(snap, Filters{ProgramID: "p2025"})

	if len(projection.Weeks) != 2 {
		t.Fatalf("expected 2 week cards, got %d", len(projection.Weeks))
	}
	if projection.Weeks[0].WeekNumber != 1 || projection.Weeks[1].WeekNumber != 3 {
		t.Fatalf("week numbers = %d,%d, want 1,3", projection.Weeks[0].WeekNumber, projection.Weeks[1].WeekNumber)
	}

	day := projection.Weeks[0].Days[0]
	if day.Date != "2025-09-01" || day.Location != "Pendik" {
		t.Fatalf("unexpected day bucket: %+v", day)
	}
	if len(day.Sessions) != 2 {
		t.Fatalf("expected 2 sessions on %s, got %d", day.Date, len(day.Sessions))
	}
	if day.Sessions[0].Time != "08:40" || day.Sessions[1].Time != "10:40" {
		t.Errorf("sessions not time-ordered: %s, %s", day.Sessions[0].Time, day.Sessions[1].Time)
	}
	if day.Sessions[1].CourseName != "ECG Basics" {
		t.Errorf("course name = %s, want ECG Basics", day.Sessions[1].CourseName)
	}
	if day.Sessions[1].Instructors[0] != "Prof. Dr. Yilmaz" {
		t.Errorf("instructor = %s, want Prof. Dr. Yilmaz", day.Sessions[1].Instructors[0])
	}

	// s4 references a missing block: silently excluded everywhere
	for _, week := range projection.Weeks {
		for _, d := range week.Days {
			for _, sv := range d.Sessions {
				if sv.ID == "s4" {
					t.Error("unresolved session s4 leaked into the projection")
				}
			}
		}
	}
}

func TestProjectFilters(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{name: "week", filters: Filters{Week: 3}, wantIDs: []string{"s3"}},
		{name: "block", filters: Filters{BlockID: "cardio"}, wantIDs: []string{"s1", "s2"}},
		{name: "location", filters: Filters{Location: "Basibuyuk"}, wantIDs: []string{"s3"}},
		{name: "instructor substring", filters: Filters{Instructor: "demir"}, wantIDs: []string{"s2"}},
		{name: "instructor title substring", filters: Filters{Instructor: "prof"}, wantIDs: []string{"s1", "s3"}},
		{name: "exact date", filters: Filters{Date: "2025-09-17"}, wantIDs: []string{"s3"}},
		{name: "all explicit", filters: Filters{BlockID: "all", Location: "all"}, wantIDs: []string{"s1", "s2", "s3"}},
		{name: "no match", filters: Filters{BlockID: "cardio", Location: "Basibuyuk"}, wantIDs: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			projection := Project(snap, tc.filters)
			var got []string
			for _, week := range projection.Weeks {
				for _, day := range week.Days {
					for _, sv := range day.Sessions {
						got = append(got, sv.ID)
					}
				}
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("session ids = %v, want %v", got, tc.wantIDs)
			}
			for i := range got {
				if got[i] != tc.wantIDs[i] {
					t.Fatalf("session ids = %v, want %v", got, tc.wantIDs)
				}
			}
		})
	}
}

func TestProjectProgramScope(t *testing.T) {
	snap := testSnapshot(t)
	snap.Sessions = append(snap.Sessions,
		models.Session{EntityModel: models.EntityModel{ID: "s5"}, ProgramID: "other", BlockID: "cardio", WeekOfBlock: 1, DayOfWeek: 1, Time: "08:40"},
		models.Session{EntityModel: models.EntityModel{ID: "s6"}, ProgramID: "p2025", BlockID: "cardio", WeekOfBlock: 1, DayOfWeek: 1, Time: "09:40"},
	)

	projection := Project(snap, Filters{ProgramID: "p2025", Date: "2025-09-02"})

	var got []string
	for _, week := range projection.Weeks {
		for _, day := range week.Days {
			for _, sv := range day.Sessions {
				got = append(got, sv.ID)
			}
		}
	}
	// s6 is scoped to the active program; s5 belongs to another program.
	// Legacy sessions without a program id would also survive.
	if len(got) != 1 || got[0] != "s6" {
		t.Fatalf("session ids = %v, want [s6]", got)
	}
}

func TestProjectSubgroupTracks(t *testing.T) {
	snap := testSnapshot(t)
	snap.Program.HasSubgroups = true
	snap.Program.Subgroups = models.StringList{"A", "B"}
	snap.Sessions = []models.Session{
		{EntityModel: models.EntityModel{ID: "s1"}, BlockID: "cardio", WeekOfBlock: 1, DayOfWeek: 0, Time: "08:40", Subgroup: "all", Location: "Pendik"},
		{EntityModel: models.EntityModel{ID: "s2"}, BlockID: "cardio", WeekOfBlock: 1, DayOfWeek: 0, Time: "10:40", Subgroup: "A", Location: "Pendik"},
	}

	projection := Project(snap, Filters{})
	day := projection.Weeks[0].Days[0]

	if day.Tracks == nil {
		t.Fatal("expected subgroup tracks")
	}
	trackA, trackB := day.Tracks["A"], day.Tracks["B"]
	if len(trackA) != 2 {
		t.Errorf("track A has %d sessions, want 2 (own + shared)", len(trackA))
	}
	// The "all" session is duplicated into B; B has no sessions of its
	// own beyond that, but the track must still be present.
	if trackB == nil {
		t.Fatal("track B missing; empty tracks must stay present")
	}
	if len(trackB) != 1 || trackB[0].ID != "s1" {
		t.Errorf("track B = %v, want just the shared session s1", trackB)
	}
}

func TestProjectWithoutSubgroupsHasNoTracks(t *testing.T) {
	snap := testSnapshot(t)
	projection := Project(snap, Filters{})
	for _, week := range projection.Weeks {
		for _, day := range week.Days {
			if day.Tracks != nil {
				t.Fatal("tracks built for a program without subgroups")
			}
		}
	}
}
