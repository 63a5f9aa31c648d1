package controllers

import (
	"errors"
	"sort"
	"strings"

	"courseschedule_go/services"
	"courseschedule_go/services/scheduler"

	"github.com/gofiber/fiber/v2"
)

type ScheduleController struct {
	snapshots *services.SnapshotService
}

func NewScheduleController() *ScheduleController {
	return &ScheduleController{snapshots: services.NewSnapshotService()}
}

// InstructorScheduleView lists one instructor's resolved sessions
type InstructorScheduleView struct {
	InstructorID string                 `json:"instructor_id"`
	Instructor   string                 `json:"instructor"`
	Department   string                 `json:"department"`
	Sessions     []InstructorSessionRow `json:"sessions"`
}

// InstructorSessionRow is one row of the per-instructor listing
type InstructorSessionRow struct {
	SessionID  string `json:"session_id"`
	WeekNumber int    `json:"week_number"`
	Day        string `json:"day"`
	Date       string `json:"date"`
	Display    string `json:"display"`
	Time       string `json:"time"`
	CourseName string `json:"course_name"`
	BlockName  string `json:"block_name"`
	Type       string `json:"type"`
	Subgroup   string `json:"subgroup"`
	Location   string `json:"location"`
}

// GetSchedule returns the projected weekly schedule for the active
// program, filtered by query parameters and cached in Redis per
// filter set and dataset version.
func (sc *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	filters := scheduler.Filters{
		Week:       c.QueryInt("week"),
		BlockID:    c.Query("block_id"),
		Location:   c.Query("location"),
		Instructor: c.Query("instructor"),
		Date:       c.Query("date"),
	}

	program, err := sc.snapshots.ActiveProgram()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active program",
		})
	}
	filters.ProgramID = program.ID

	if cached, ok := sc.snapshots.CachedProjection(c.Context(), filters); ok {
		return c.JSON(fiber.Map{
			"program":  program,
			"schedule": cached,
			"cached":   true,
		})
	}

	snap, err := sc.snapshots.LoadSnapshotFor(program)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule data",
		})
	}

	projection := scheduler.Project(snap, filters)
	sc.snapshots.CacheProjection(c.Context(), filters, &projection)

	return c.JSON(fiber.Map{
		"program":  program,
		"schedule": projection,
		"cached":   false,
	})
}

// GetInstructorSchedules returns every instructor's resolved sessions,
// optionally narrowed by a case-insensitive name substring.
func (sc *ScheduleController) GetInstructorSchedules(c *fiber.Ctx) error {
	snap, err := sc.snapshots.LoadSnapshot()
	if err != nil {
		if errors.Is(err, services.ErrNoActiveProgram) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No active program",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule data",
		})
	}

	needle := strings.ToLower(strings.TrimSpace(c.Query("instructor")))

	views := make([]InstructorScheduleView, 0, len(snap.Instructors))
	for _, instructor := range snap.Instructors {
		displayName := instructor.DisplayName()
		if needle != "" && !strings.Contains(strings.ToLower(displayName), needle) {
			continue
		}

		view := InstructorScheduleView{
			InstructorID: instructor.ID,
			Instructor:   displayName,
			Department:   instructor.Department,
			Sessions:     []InstructorSessionRow{},
		}

		for _, session := range snap.Sessions {
			if !session.InstructorIDs.Contains(instructor.ID) {
				continue
			}
			res, ok := scheduler.Resolve(session, snap.Blocks, snap.Calendar)
			if !ok {
				continue
			}
			row := InstructorSessionRow{
				SessionID:  session.ID,
				WeekNumber: res.WeekNumber,
				Day:        res.Day.Day,
				Date:       res.Day.Date,
				Display:    res.Day.Display,
				Time:       session.Time,
				CourseName: snap.CourseName(session.CourseID),
				Type:       session.Type,
				Subgroup:   session.Subgroup,
				Location:   session.Location,
			}
			if block, ok := snap.BlockByID(session.BlockID); ok {
				row.BlockName = block.Name
			}
			view.Sessions = append(view.Sessions, row)
		}

		sort.Slice(view.Sessions, func(i, j int) bool {
			a, b := view.Sessions[i], view.Sessions[j]
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			if a.Time != b.Time {
				return a.Time < b.Time
			}
			return a.SessionID < b.SessionID
		})
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"instructors": views,
		"total":       len(views),
	})
}

// GetConflicts reports instructor double-bookings in the active
// program's schedule. Advisory only: conflicting data stays stored.
func (sc *ScheduleController) GetConflicts(c *fiber.Ctx) error {
	snap, err := sc.snapshots.LoadSnapshot()
	if err != nil {
		if errors.Is(err, services.ErrNoActiveProgram) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No active program",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule data",
		})
	}

	conflicts := scheduler.FindConflicts(snap)

	return c.JSON(fiber.Map{
		"conflicts": conflicts,
		"total":     len(conflicts),
	})
}
