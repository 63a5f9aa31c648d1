package scheduler

import "courseschedule_go/models"

// Resolution is a session's place on the concrete calendar
type Resolution struct {
	Day        DayRecord
	WeekNumber int // 1-based semester week
}

// Resolve maps a session's abstract position (block, week-of-block,
// day-of-week) to a concrete calendar day. The second return value is
// false when the session cannot be placed: missing block, block without
// weeks, or a week number outside the generated calendar. That is a
// normal "unscheduled" state, not an error - such sessions are simply
// excluded from every downstream view.
//
// Out-of-range weekOfBlock and dayOfWeek values are clamped to the
// nearest valid slot rather than rejected. This is the single clamp
// policy for the whole system; callers must not re-implement their own.
func Resolve(session models.Session, blocks []models.Block, calendar []WeekRecord) (Resolution, bool) {
	block, ok := findBlock(blocks, session.BlockID)
	if !ok || len(block.Weeks) == 0 {
		return Resolution{}, false
	}

	weekIdx := clamp(session.WeekOfBlock-1, 0, len(block.Weeks)-1)
	weekNumber := block.Weeks[weekIdx]
	if weekNumber < 1 || weekNumber > len(calendar) {
		return Resolution{}, false
	}

	week := calendar[weekNumber-1]
	day := week.Days[clamp(session.DayOfWeek, 0, DaysPerWeek-1)]
	return Resolution{Day: day, WeekNumber: weekNumber}, true
}

// ResolveDate is the date-only form of Resolve
func ResolveDate(session models.Session, blocks []models.Block, calendar []WeekRecord) (DayRecord, bool) {
	r, ok := Resolve(session, blocks, calendar)
	if !ok {
		return DayRecord{}, false
	}
	return r.Day, true
}
