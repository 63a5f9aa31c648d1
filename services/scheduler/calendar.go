package scheduler

import (
	"fmt"
	"time"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02.01.2006"
)

// GenerateCalendar produces the ordered week/day grid for a program.
// Week w (0-based) starts at startDate + 7w days and carries the five
// days Monday..Friday. The start date is treated as a Monday; it is the
// caller's job to configure a Monday start, the generator does not
// search for one. Days whose ISO date appears in holidays are flagged.
//
// The output is deterministic and the inputs are never modified.
func GenerateCalendar(startDate time.Time, totalWeeks int, holidays []string) ([]WeekRecord, error) {
	if totalWeeks <= 0 {
		return nil, fmt.Errorf("%w: total weeks must be positive, got %d", ErrInvalidConfig, totalWeeks)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidConfig)
	}

	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h] = true
	}

	weeks := make([]WeekRecord, 0, totalWeeks)
	for w := 0; w < totalWeeks; w++ {
		weekStart := startDate.AddDate(0, 0, w*7)
		weekEnd := weekStart.AddDate(0, 0, DaysPerWeek-1)

		days := make([]DayRecord, 0, DaysPerWeek)
		for d := 0; d < DaysPerWeek; d++ {
			date := weekStart.AddDate(0, 0, d)
			iso := date.Format(isoDateLayout)
			days = append(days, DayRecord{
				Day:       weekdayNames[d],
				Date:      iso,
				Display:   date.Format(displayDateLayout),
				IsHoliday: holidaySet[iso],
			})
		}

		weeks = append(weeks, WeekRecord{
			WeekNumber:   w + 1,
			StartDate:    weekStart.Format(isoDateLayout),
			EndDate:      weekEnd.Format(isoDateLayout),
			StartDisplay: weekStart.Format(displayDateLayout),
			EndDisplay:   weekEnd.Format(displayDateLayout),
			Days:         days,
		})
	}

	return weeks, nil
}

// ParseStartDate parses a program's YYYY-MM-DD start date
func ParseStartDate(value string) (time.Time, error) {
	t, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad start date %q", ErrInvalidConfig, value)
	}
	return t, nil
}
