package controllers

import (
	"fmt"
	"strings"

	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/websocket"
	"courseschedule_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportController handles spreadsheet imports of instructors and
// courses. Expected format: first sheet, header row, one entity per
// row.
type ImportController struct {
	mutator
}

func NewImportController(hub *websocket.Hub) *ImportController {
	return &ImportController{mutator: newMutator(hub)}
}

// ImportInstructors imports instructors from an XLSX upload.
// Columns: name (required), title, department.
func (ic *ImportController) ImportInstructors(c *fiber.Ctx) error {
	rows, err := readUploadedXLSX(c)
	if err != nil {
		return err
	}

	colIndex := buildColumnIndex(rows[0])
	nameCol, ok := colIndex["name"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing column: name",
		})
	}
	titleCol, hasTitle := colIndex["title"]
	departmentCol, hasDepartment := colIndex["department"]

	var created []models.Instructor
	var skipped []string

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := 1; i < len(rows); i++ {
			raw := rows[i]
			name := cellAt(raw, nameCol)
			if name == "" {
				continue
			}

			instructor := models.Instructor{Name: name}
			if hasTitle {
				instructor.Title = cellAt(raw, titleCol)
			}
			if hasDepartment {
				instructor.Department = cellAt(raw, departmentCol)
			}

			// Re-imports of the same sheet must not duplicate people
			var existing models.Instructor
			if err := tx.Where("name = ? AND title = ?", instructor.Name, instructor.Title).
				First(&existing).Error; err == nil {
				skipped = append(skipped, fmt.Sprintf("row %d: %s already exists", i+1, name))
				continue
			}

			id, err := nextSequentialID(tx, "i", &models.Instructor{})
			if err != nil {
				return err
			}
			instructor.ID = id
			if err := tx.Create(&instructor).Error; err != nil {
				return err
			}
			created = append(created, instructor)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Import failed",
		})
	}

	if len(created) > 0 {
		ic.recordChange(c, "IMPORT", "instructors", "", fiber.Map{
			"created": len(created),
			"skipped": len(skipped),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Instructors imported",
		"created":     len(created),
		"instructors": created,
		"skipped":     skipped,
	})
}

// ImportCourses imports courses from an XLSX upload.
// Columns: name (required), block (block name or id).
func (ic *ImportController) ImportCourses(c *fiber.Ctx) error {
	rows, err := readUploadedXLSX(c)
	if err != nil {
		return err
	}

	colIndex := buildColumnIndex(rows[0])
	nameCol, ok := colIndex["name"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing column: name",
		})
	}
	blockCol, hasBlock := colIndex["block"]

	var blocks []models.Block
	if err := database.DB.Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch blocks",
		})
	}

	var created []models.Course
	var skipped []string

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := 1; i < len(rows); i++ {
			raw := rows[i]
			name := cellAt(raw, nameCol)
			if name == "" {
				continue
			}

			course := models.Course{Name: name}
			if hasBlock {
				ref := cellAt(raw, blockCol)
				if ref != "" {
					blockID, ok := matchBlock(blocks, ref)
					if !ok {
						skipped = append(skipped, fmt.Sprintf("row %d: unknown block %q", i+1, ref))
						continue
					}
					course.BlockID = blockID
				}
			}

			var existing models.Course
			if err := tx.Where("name = ? AND block_id = ?", course.Name, course.BlockID).
				First(&existing).Error; err == nil {
				skipped = append(skipped, fmt.Sprintf("row %d: %s already exists", i+1, name))
				continue
			}

			id, err := nextSequentialID(tx, "c", &models.Course{})
			if err != nil {
				return err
			}
			course.ID = id
			if err := tx.Create(&course).Error; err != nil {
				return err
			}
			created = append(created, course)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Import failed",
		})
	}

	if len(created) > 0 {
		ic.recordChange(c, "IMPORT", "courses", "", fiber.Map{
			"created": len(created),
			"skipped": len(skipped),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Courses imported",
		"created": len(created),
		"courses": created,
		"skipped": skipped,
	})
}

// readUploadedXLSX reads the "file" form upload into rows. Errors are
// fiber errors rendered by the app's error handler.
func readUploadedXLSX(c *fiber.Ctx) ([][]string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unsupported file type (xlsx)")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot open file")
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot parse workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot read sheet")
	}
	if len(rows) < 2 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file has no data rows")
	}
	return rows, nil
}

// buildColumnIndex maps lowercased header names to column positions
func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			index[key] = i
		}
	}
	return index
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return utils.SanitizeString(row[col])
}

// matchBlock resolves a spreadsheet block reference by id or name
func matchBlock(blocks []models.Block, ref string) (string, bool) {
	for _, b := range blocks {
		if b.ID == ref || strings.EqualFold(b.Name, ref) {
			return b.ID, true
		}
	}
	return "", false
}
