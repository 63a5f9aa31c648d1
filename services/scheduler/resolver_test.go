package scheduler

import (
	"testing"
	"time"

	"courseschedule_go/models"
)

func testCalendar(t *testing.T, totalWeeks int) []WeekRecord {
	t.Helper()
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	calendar, err := GenerateCalendar(start, totalWeeks, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return calendar
}

func TestResolveDate(t *testing.T) {
	blocks := []models.Block{
		mkBlock("a", 1, 1, 2),
		mkBlock("b", 2, 3),
	}
	calendar := testCalendar(t, 3)

	tests := []struct {
		name    string
		session models.Session
		want    string
		ok      bool
	}{
		{
			name:    "first week first day",
			session: models.Session{BlockID: "a", WeekOfBlock: 1, DayOfWeek: 0},
			want:    "2025-09-01",
			ok:      true,
		},
		{
			name:    "second week of block",
			session: models.Session{BlockID: "a", WeekOfBlock: 2, DayOfWeek: 2},
			want:    "2025-09-10",
			ok:      true,
		},
		{
			name:    "later block",
			session: models.Session{BlockID: "b", WeekOfBlock: 1, DayOfWeek: 4},
			want:    "2025-09-19",
			ok:      true,
		},
		{
			name:    "week of block clamped to block length",
			session: models.Session{BlockID: "a", WeekOfBlock: 5, DayOfWeek: 0},
			want:    "2025-09-08", // weeks[1], not unresolved
			ok:      true,
		},
		{
			name:    "zero week of block clamps to first",
			session: models.Session{BlockID: "a", WeekOfBlock: 0, DayOfWeek: 0},
			want:    "2025-09-01",
			ok:      true,
		},
		{
			name:    "day of week clamped to Friday",
			session: models.Session{BlockID: "a", WeekOfBlock: 1, DayOfWeek: 9},
			want:    "2025-09-05",
			ok:      true,
		},
		{
			name:    "negative day of week clamped to Monday",
			session: models.Session{BlockID: "a", WeekOfBlock: 1, DayOfWeek: -2},
			want:    "2025-09-01",
			ok:      true,
		},
		{
			name:    "missing block",
			session: models.Session{BlockID: "nope", WeekOfBlock: 1, DayOfWeek: 0},
			ok:      false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveDate(tc.session, blocks, calendar)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Date != tc.want {
				t.Fatalf("date = %s, want %s", got.Date, tc.want)
			}
		})
	}
}

func TestResolveDateUnresolvedStates(t *testing.T) {
	calendar := testCalendar(t, 2)

	emptyWeeks := mkBlock("empty", 1)
	beyondCalendar := mkBlock("late", 2, 7)

	tests := []struct {
		name    string
		blocks  []models.Block
		session models.Session
	}{
		{
			name:    "block without weeks",
			blocks:  []models.Block{emptyWeeks},
			session: models.Session{BlockID: "empty", WeekOfBlock: 1},
		},
		{
			name:    "week beyond generated calendar",
			blocks:  []models.Block{beyondCalendar},
			session: models.Session{BlockID: "late", WeekOfBlock: 1},
		},
		{
			name:    "no blocks at all",
			blocks:  nil,
			session: models.Session{BlockID: "a", WeekOfBlock: 1},
		},
		{
			name:    "empty calendar",
			blocks:  []models.Block{mkBlock("a", 1, 1)},
			session: models.Session{BlockID: "a", WeekOfBlock: 1},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cal := calendar
			if tc.name == "empty calendar" {
				cal = nil
			}
			if _, ok := ResolveDate(tc.session, tc.blocks, cal); ok {
				t.Fatal("expected unresolved")
			}
		})
	}
}
