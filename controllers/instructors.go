package controllers

import (
	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/websocket"

	"github.com/gofiber/fiber/v2"
)

type InstructorController struct {
	mutator
}

func NewInstructorController(hub *websocket.Hub) *InstructorController {
	return &InstructorController{mutator: newMutator(hub)}
}

// GetInstructors returns all instructors
func (ic *InstructorController) GetInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor

	query := database.DB.Model(&models.Instructor{})
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}

	if err := query.Order("id").Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch instructors",
		})
	}

	return c.JSON(fiber.Map{
		"instructors": instructors,
		"total":       len(instructors),
	})
}

// GetInstructor returns a specific instructor by ID
func (ic *InstructorController) GetInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Instructor not found",
		})
	}

	return c.JSON(fiber.Map{
		"instructor": instructor,
	})
}

// CreateInstructor creates a new instructor
func (ic *InstructorController) CreateInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := c.BodyParser(&instructor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if instructor.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Instructor name is required",
		})
	}

	if instructor.ID == "" {
		id, err := nextSequentialID(database.DB, "i", &models.Instructor{})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to allocate instructor id",
			})
		}
		instructor.ID = id
	}

	if err := database.DB.Create(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create instructor",
		})
	}

	ic.recordChange(c, "CREATE", "instructors", instructor.ID, instructor)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Instructor created successfully",
		"instructor": instructor,
	})
}

// UpdateInstructor updates an existing instructor
func (ic *InstructorController) UpdateInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Instructor not found",
		})
	}

	originalInstructor := instructor

	var updateData models.Instructor
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	updateData.ID = ""

	if err := database.DB.Model(&instructor).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update instructor",
		})
	}

	ic.recordChange(c, "UPDATE", "instructors", instructor.ID, fiber.Map{
		"original": originalInstructor,
		"updated":  instructor,
	})

	return c.JSON(fiber.Map{
		"message":    "Instructor updated successfully",
		"instructor": instructor,
	})
}

// DeleteInstructor deletes an instructor
func (ic *InstructorController) DeleteInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Instructor not found",
		})
	}

	if err := database.DB.Delete(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete instructor",
		})
	}

	ic.recordChange(c, "DELETE", "instructors", instructor.ID, instructor)

	return c.JSON(fiber.Map{
		"message": "Instructor deleted successfully",
	})
}
