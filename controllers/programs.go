package controllers

import (
	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/scheduler"
	"courseschedule_go/services/websocket"
	"courseschedule_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramController struct {
	mutator
}

func NewProgramController(hub *websocket.Hub) *ProgramController {
	return &ProgramController{mutator: newMutator(hub)}
}

// GetPrograms returns all programs, active first
func (pc *ProgramController) GetPrograms(c *fiber.Ctx) error {
	var programs []models.Program
	if err := database.DB.Order("active DESC, academic_year, term, id").Find(&programs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch programs",
		})
	}

	return c.JSON(fiber.Map{
		"programs": programs,
		"total":    len(programs),
	})
}

// GetProgram returns a specific program by ID
func (pc *ProgramController) GetProgram(c *fiber.Ctx) error {
	var program models.Program
	if err := database.DB.First(&program, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Program not found",
		})
	}

	return c.JSON(fiber.Map{
		"program": program,
	})
}

// CreateProgram creates a new program offering
func (pc *ProgramController) CreateProgram(c *fiber.Ctx) error {
	var program models.Program
	if err := c.BodyParser(&program); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if program.AcademicYear == "" || program.GroupName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Academic year and group are required",
		})
	}
	if program.StartDate != "" {
		if _, err := scheduler.ParseStartDate(program.StartDate); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Start date must be YYYY-MM-DD",
			})
		}
	}
	for _, t := range program.SessionTimes {
		if !utils.IsValidSessionTime(t) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Session times must be HH:MM",
			})
		}
	}

	if program.ID == "" {
		program.ID = uuid.New().String()
	}
	if program.TotalWeeks <= 0 {
		program.TotalWeeks = scheduler.DefaultTotalWeeks
	}
	// New programs never steal the active slot; use the activate endpoint
	program.Active = false

	if err := database.DB.Create(&program).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create program",
		})
	}

	pc.recordChange(c, "CREATE", "programs", program.ID, program)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Program created successfully",
		"program": program,
	})
}

// UpdateProgram updates calendar parameters of an existing program
func (pc *ProgramController) UpdateProgram(c *fiber.Ctx) error {
	var program models.Program
	if err := database.DB.First(&program, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Program not found",
		})
	}

	originalProgram := program

	var updateData models.Program
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.StartDate != "" {
		if _, err := scheduler.ParseStartDate(updateData.StartDate); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Start date must be YYYY-MM-DD",
			})
		}
	}
	for _, t := range updateData.SessionTimes {
		if !utils.IsValidSessionTime(t) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Session times must be HH:MM",
			})
		}
	}

	// Id and active flag are immutable here
	updateData.ID = ""
	updateData.Active = program.Active

	if err := database.DB.Model(&program).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update program",
		})
	}

	database.DB.First(&program, "id = ?", program.ID)

	pc.recordChange(c, "UPDATE", "programs", program.ID, fiber.Map{
		"original": originalProgram,
		"updated":  program,
	})

	return c.JSON(fiber.Map{
		"message": "Program updated successfully",
		"program": program,
	})
}

// ActivateProgram makes the given program the single active one. The
// swap is transactional so there is never zero or two active programs.
func (pc *ProgramController) ActivateProgram(c *fiber.Ctx) error {
	var program models.Program
	if err := database.DB.First(&program, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Program not found",
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Program{}).
			Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&program).Update("active", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to activate program",
		})
	}

	pc.recordChange(c, "ACTIVATE", "programs", program.ID, nil)

	return c.JSON(fiber.Map{
		"message": "Program activated successfully",
		"program": program,
	})
}

// DeleteProgram deletes a program and its scoped sessions
func (pc *ProgramController) DeleteProgram(c *fiber.Ctx) error {
	var program models.Program
	if err := database.DB.First(&program, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Program not found",
		})
	}

	if program.Active {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot delete the active program",
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&program).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete program",
		})
	}

	pc.recordChange(c, "DELETE", "programs", program.ID, program)

	return c.JSON(fiber.Map{
		"message": "Program deleted successfully",
	})
}
