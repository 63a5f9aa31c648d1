package controllers

import (
	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/websocket"
	"courseschedule_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionController struct {
	mutator
}

func NewSessionController(hub *websocket.Hub) *SessionController {
	return &SessionController{mutator: newMutator(hub)}
}

// UpdateSessionRequest carries the editable fields of a session.
// Pointers distinguish "not sent" from zero values.
type UpdateSessionRequest struct {
	BlockID       *string            `json:"block_id"`
	WeekOfBlock   *int               `json:"week_of_block"`
	DayOfWeek     *int               `json:"day_of_week"`
	Time          *string            `json:"time"`
	CourseID      *string            `json:"course_id"`
	InstructorIDs *models.StringList `json:"instructor_ids"`
	Type          *string            `json:"type"`
	Subgroup      *string            `json:"subgroup"`
	Location      *string            `json:"location"`
}

// GetSessions returns sessions, optionally scoped by program or block
func (sc *SessionController) GetSessions(c *fiber.Ctx) error {
	var sessions []models.Session

	query := database.DB.Model(&models.Session{})
	if programID := c.Query("program_id"); programID != "" {
		// Global sessions (empty program_id) belong to every program
		query = query.Where("program_id = ? OR program_id = ''", programID)
	}
	if blockID := c.Query("block_id"); blockID != "" {
		query = query.Where("block_id = ?", blockID)
	}

	if err := query.Order("id").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// GetSession returns a specific session by ID
func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	var session models.Session
	if err := database.DB.First(&session, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	return c.JSON(fiber.Map{
		"session": session,
	})
}

// CreateSession creates a new session located by
// (block, week-of-block, day-of-week, time).
func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	var session models.Session
	if err := c.BodyParser(&session); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.WeekOfBlock == 0 {
		session.WeekOfBlock = 1
	}
	if session.Type == "" {
		session.Type = models.SessionTypeLecture
	}
	if session.Subgroup == "" {
		session.Subgroup = models.SubgroupAll
	}
	session.InstructorIDs = session.InstructorIDs.Dedupe()

	if errMsg := sc.validateSession(&session); errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsg,
		})
	}

	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	sc.recordChange(c, "CREATE", "sessions", session.ID, session)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Session created successfully",
		"session": session,
	})
}

// UpdateSession edits the sent fields of an existing session
func (sc *SessionController) UpdateSession(c *fiber.Ctx) error {
	var session models.Session
	if err := database.DB.First(&session, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	originalSession := session

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.BlockID != nil {
		session.BlockID = *req.BlockID
	}
	if req.WeekOfBlock != nil {
		session.WeekOfBlock = *req.WeekOfBlock
	}
	if req.DayOfWeek != nil {
		session.DayOfWeek = *req.DayOfWeek
	}
	if req.Time != nil {
		session.Time = *req.Time
	}
	if req.CourseID != nil {
		session.CourseID = *req.CourseID
	}
	if req.InstructorIDs != nil {
		session.InstructorIDs = *req.InstructorIDs
	}
	if req.Type != nil {
		session.Type = *req.Type
	}
	if req.Subgroup != nil {
		session.Subgroup = *req.Subgroup
	}
	if req.Location != nil {
		session.Location = *req.Location
	}
	session.InstructorIDs = session.InstructorIDs.Dedupe()

	if errMsg := sc.validateSession(&session); errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsg,
		})
	}

	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update session",
		})
	}

	sc.recordChange(c, "UPDATE", "sessions", session.ID, fiber.Map{
		"original": originalSession,
		"updated":  session,
	})

	return c.JSON(fiber.Map{
		"message": "Session updated successfully",
		"session": session,
	})
}

// DeleteSession deletes a session
func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	var session models.Session
	if err := database.DB.First(&session, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	if err := database.DB.Delete(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete session",
		})
	}

	sc.recordChange(c, "DELETE", "sessions", session.ID, session)

	return c.JSON(fiber.Map{
		"message": "Session deleted successfully",
	})
}

// validateSession enforces the data-boundary rules so the core never
// sees malformed placements. Returns an error message or "".
func (sc *SessionController) validateSession(session *models.Session) string {
	if session.BlockID == "" {
		return "Block id is required"
	}
	var block models.Block
	if err := database.DB.First(&block, "id = ?", session.BlockID).Error; err != nil {
		return "Unknown block"
	}

	if session.DayOfWeek < 0 || session.DayOfWeek > 4 {
		return "Day of week must be 0 (Monday) to 4 (Friday)"
	}
	if session.WeekOfBlock < 1 {
		return "Week of block must be at least 1"
	}
	if !utils.IsValidSessionTime(session.Time) {
		return "Time must be HH:MM"
	}
	if session.Type != models.SessionTypeLecture && session.Type != models.SessionTypePractice {
		return "Type must be lecture or practice"
	}

	if session.CourseID != "" {
		var course models.Course
		if err := database.DB.First(&course, "id = ?", session.CourseID).Error; err != nil {
			return "Unknown course"
		}
	}
	for _, instructorID := range session.InstructorIDs {
		var instructor models.Instructor
		if err := database.DB.First(&instructor, "id = ?", instructorID).Error; err != nil {
			return "Unknown instructor: " + instructorID
		}
	}

	if session.ProgramID != "" {
		var program models.Program
		if err := database.DB.First(&program, "id = ?", session.ProgramID).Error; err != nil {
			return "Unknown program"
		}
		return validateAgainstProgram(session, program)
	}
	// Global sessions are checked against the active program, if any
	var program models.Program
	if err := database.DB.Where("active = ?", true).First(&program).Error; err == nil {
		return validateAgainstProgram(session, program)
	}
	return ""
}

func validateAgainstProgram(session *models.Session, program models.Program) string {
	if len(program.SessionTimes) > 0 && !program.SessionTimes.Contains(session.Time) {
		return "Time is not one of the program's session times"
	}
	if session.Subgroup != models.SubgroupAll {
		if !program.HasSubgroups {
			return "Program has no subgroups"
		}
		if !program.Subgroups.Contains(session.Subgroup) {
			return "Unknown subgroup: " + session.Subgroup
		}
	}
	return ""
}
