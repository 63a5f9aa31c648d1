package services

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"courseschedule_go/models"
)

func demoExport() DatasetExport {
	return DatasetExport{
		Programs: []models.Program{{
			EntityModel:  models.EntityModel{ID: "2025-fall-med2"},
			AcademicYear: "2025-2026",
			Term:         "Fall",
			GroupName:    "Medicine Year 2",
			StartDate:    "2025-09-01",
			TotalWeeks:   14,
			Holidays:     models.StringList{"2025-10-29"},
			SessionTimes: models.StringList{"09:00", "11:00"},
			HasSubgroups: true,
			Subgroups:    models.StringList{"A", "B"},
			Active:       true,
		}},
		Blocks: []models.Block{{
			EntityModel: models.EntityModel{ID: "cardiovascular_system"},
			Name:        "Cardiovascular System",
			ShortName:   "Card",
			Order:       1,
			Weeks:       models.IntList{1, 2, 3},
			Color:       "hsl(210, 70%, 50%)",
		}},
		Courses: []models.Course{{
			EntityModel: models.EntityModel{ID: "c001"},
			Name:        "Cardiac Physiology",
			BlockID:     "cardiovascular_system",
		}},
		Instructors: []models.Instructor{{
			EntityModel: models.EntityModel{ID: "i001"},
			Name:        "Ayşe Yılmaz",
			Title:       "Prof. Dr.",
			Department:  "Cardiology",
		}},
		Sessions: []models.Session{{
			EntityModel:   models.EntityModel{ID: "s001"},
			ProgramID:     "2025-fall-med2",
			BlockID:       "cardiovascular_system",
			WeekOfBlock:   1,
			DayOfWeek:     0,
			Time:          "09:00",
			CourseID:      "c001",
			InstructorIDs: models.StringList{"i001"},
			Type:          models.SessionTypeLecture,
			Subgroup:      models.SubgroupAll,
			Location:      "Lecture Hall 1",
		}},
		ExportedAt: time.Date(2025, 9, 1, 2, 0, 0, 0, time.UTC),
	}
}

func TestDatasetExportRoundTrip(t *testing.T) {
	original := demoExport()

	first, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var restored DatasetExport
	if err := json.Unmarshal(first, &restored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every field, ids included, must survive the round-trip verbatim
	if !reflect.DeepEqual(original, restored) {
		t.Errorf("restored export differs from original:\n got: %+v\nwant: %+v", restored, original)
	}

	second, err := json.Marshal(restored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("re-export is not byte-identical:\n first: %s\nsecond: %s", first, second)
	}
}

func TestDatasetExportKeepsIDs(t *testing.T) {
	data, err := json.Marshal(demoExport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var restored DatasetExport
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		got  string
		want string
	}{
		{restored.Programs[0].ID, "2025-fall-med2"},
		{restored.Blocks[0].ID, "cardiovascular_system"},
		{restored.Courses[0].ID, "c001"},
		{restored.Instructors[0].ID, "i001"},
		{restored.Sessions[0].ID, "s001"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("id = %s, want %s", c.got, c.want)
		}
	}
}
