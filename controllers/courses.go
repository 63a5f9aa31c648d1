package controllers

import (
	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/websocket"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	mutator
}

func NewCourseController(hub *websocket.Hub) *CourseController {
	return &CourseController{mutator: newMutator(hub)}
}

// GetCourses returns all courses
func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	var courses []models.Course

	query := database.DB.Model(&models.Course{})
	if blockID := c.Query("block_id"); blockID != "" {
		query = query.Where("block_id = ?", blockID)
	}

	if err := query.Order("id").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch courses",
		})
	}

	return c.JSON(fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourse returns a specific course by ID
func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(fiber.Map{
		"course": course,
	})
}

// CreateCourse creates a new course
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if course.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Course name is required",
		})
	}
	if course.BlockID != "" {
		var block models.Block
		if err := database.DB.First(&block, "id = ?", course.BlockID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown block",
			})
		}
	}

	if course.ID == "" {
		id, err := nextSequentialID(database.DB, "c", &models.Course{})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to allocate course id",
			})
		}
		course.ID = id
	}

	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create course",
		})
	}

	cc.recordChange(c, "CREATE", "courses", course.ID, course)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

// UpdateCourse updates an existing course
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	originalCourse := course

	var updateData models.Course
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.BlockID != "" && updateData.BlockID != course.BlockID {
		var block models.Block
		if err := database.DB.First(&block, "id = ?", updateData.BlockID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown block",
			})
		}
	}
	updateData.ID = ""

	if err := database.DB.Model(&course).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update course",
		})
	}

	cc.recordChange(c, "UPDATE", "courses", course.ID, fiber.Map{
		"original": originalCourse,
		"updated":  course,
	})

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// DeleteCourse deletes a course. Sessions keep their course_id; the
// projector renders them without a course name.
func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	if err := database.DB.Delete(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete course",
		})
	}

	cc.recordChange(c, "DELETE", "courses", course.ID, course)

	return c.JSON(fiber.Map{
		"message": "Course deleted successfully",
	})
}
