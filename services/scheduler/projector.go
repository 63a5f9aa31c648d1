package scheduler

import (
	"sort"
	"strings"

	"courseschedule_go/models"
)

// Filters narrows the projected schedule. Zero values mean "no filter";
// the literal "all" is accepted too since that is what the view layer's
// dropdowns send.
type Filters struct {
	ProgramID  string // active program scope
	Week       int    // semester week number, 0 = all
	BlockID    string
	Location   string
	Instructor string // case-insensitive substring of "title name"
	Date       string // exact ISO date
}

// SessionView is one projected session row
type SessionView struct {
	ID            string   `json:"id"`
	Time          string   `json:"time"`
	CourseID      string   `json:"course_id"`
	CourseName    string   `json:"course_name"`
	InstructorIDs []string `json:"instructor_ids"`
	Instructors   []string `json:"instructors"`
	Type          string   `json:"type"`
	Subgroup      string   `json:"subgroup"`
	Location      string   `json:"location"`
	BlockID       string   `json:"block_id"`
	BlockName     string   `json:"block_name"`
	BlockColor    string   `json:"block_color"`
}

// DayView groups one day's sessions. Two parallel tracks at different
// locations on the same date stay separate day entries. When the
// program has subgroups, Tracks carries one time-ordered list per
// subgroup label with subgroup="all" sessions duplicated into each;
// a label with no sessions keeps an explicitly empty list.
type DayView struct {
	Day       string                   `json:"day"`
	Date      string                   `json:"date"`
	Display   string                   `json:"display"`
	IsHoliday bool                     `json:"is_holiday"`
	Location  string                   `json:"location"`
	Sessions  []SessionView            `json:"sessions"`
	Tracks    map[string][]SessionView `json:"tracks,omitempty"`
}

// WeekView is one week card of the schedule
type WeekView struct {
	WeekNumber   int       `json:"week_number"`
	StartDisplay string    `json:"start_display"`
	EndDisplay   string    `json:"end_display"`
	Days         []DayView `json:"days"`
}

// Projection is the grouped view model handed to the presentation layer
type Projection struct {
	Weeks []WeekView `json:"weeks"`
}

// Project filters the snapshot's sessions and groups the survivors into
// week -> day -> time buckets. Unresolvable sessions are dropped
// silently; sessions scoped to another program are dropped; every
// remaining session lands in exactly one bucket. Output ordering is
// total and deterministic: weeks ascending, days by date then location,
// sessions by time then id.
func Project(snap *Snapshot, filters Filters) Projection {
	type dayKey struct {
		date     string
		location string
	}
	buckets := make(map[int]map[dayKey]*DayView)
	needle := strings.ToLower(strings.TrimSpace(filters.Instructor))

	for _, session := range snap.sortedSessions() {
		res, ok := Resolve(session, snap.Blocks, snap.Calendar)
		if !ok {
			continue
		}
		if session.ProgramID != "" && filters.ProgramID != "" && session.ProgramID != filters.ProgramID {
			continue
		}
		if !matchesAll(filters.BlockID, session.BlockID) {
			continue
		}
		if !matchesAll(filters.Location, session.Location) {
			continue
		}
		if needle != "" {
			joined := strings.ToLower(strings.Join(snap.InstructorNames(session.InstructorIDs), ", "))
			if !strings.Contains(joined, needle) {
				continue
			}
		}
		if filters.Week != 0 && res.WeekNumber != filters.Week {
			continue
		}
		if filters.Date != "" && res.Day.Date != filters.Date {
			continue
		}

		week, ok := buckets[res.WeekNumber]
		if !ok {
			week = make(map[dayKey]*DayView)
			buckets[res.WeekNumber] = week
		}
		key := dayKey{date: res.Day.Date, location: session.Location}
		day, ok := week[key]
		if !ok {
			day = &DayView{
				Day:       res.Day.Day,
				Date:      res.Day.Date,
				Display:   res.Day.Display,
				IsHoliday: res.Day.IsHoliday,
				Location:  session.Location,
				Sessions:  []SessionView{},
			}
			week[key] = day
		}
		day.Sessions = append(day.Sessions, snap.sessionView(session))
	}

	weekNumbers := make([]int, 0, len(buckets))
	for w := range buckets {
		weekNumbers = append(weekNumbers, w)
	}
	sort.Ints(weekNumbers)

	projection := Projection{Weeks: make([]WeekView, 0, len(weekNumbers))}
	for _, weekNum := range weekNumbers {
		view := WeekView{WeekNumber: weekNum}
		if weekNum >= 1 && weekNum <= len(snap.Calendar) {
			view.StartDisplay = snap.Calendar[weekNum-1].StartDisplay
			view.EndDisplay = snap.Calendar[weekNum-1].EndDisplay
		}

		days := make([]DayView, 0, len(buckets[weekNum]))
		for _, day := range buckets[weekNum] {
			sortSessionViews(day.Sessions)
			if snap.Program.HasSubgroups {
				day.Tracks = subgroupTracks(day.Sessions, snap.Program.Subgroups)
			}
			days = append(days, *day)
		}
		sort.Slice(days, func(i, j int) bool {
			if days[i].Date != days[j].Date {
				return days[i].Date < days[j].Date
			}
			return days[i].Location < days[j].Location
		})
		view.Days = days
		projection.Weeks = append(projection.Weeks, view)
	}

	return projection
}

func (s *Snapshot) sessionView(session models.Session) SessionView {
	view := SessionView{
		ID:            session.ID,
		Time:          session.Time,
		CourseID:      session.CourseID,
		CourseName:    s.CourseName(session.CourseID),
		InstructorIDs: session.InstructorIDs,
		Instructors:   s.InstructorNames(session.InstructorIDs),
		Type:          session.Type,
		Subgroup:      session.Subgroup,
		Location:      session.Location,
		BlockID:       session.BlockID,
	}
	if block, ok := s.BlockByID(session.BlockID); ok {
		view.BlockName = block.Name
		view.BlockColor = block.Color
	}
	return view
}

// subgroupTracks duplicates subgroup="all" sessions into every
// subgroup's column at render time. Storage keeps a single session.
func subgroupTracks(sessions []SessionView, subgroups models.StringList) map[string][]SessionView {
	tracks := make(map[string][]SessionView, len(subgroups))
	for _, label := range subgroups {
		track := []SessionView{}
		for _, sv := range sessions {
			if sv.Subgroup == models.SubgroupAll || sv.Subgroup == label {
				track = append(track, sv)
			}
		}
		tracks[label] = track
	}
	return tracks
}

func sortSessionViews(views []SessionView) {
	sort.Slice(views, func(i, j int) bool {
		if views[i].Time != views[j].Time {
			return views[i].Time < views[j].Time
		}
		return views[i].ID < views[j].ID
	})
}

func matchesAll(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}
