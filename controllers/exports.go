package controllers

import (
	"courseschedule_go/services"
	"courseschedule_go/services/websocket"

	"github.com/gofiber/fiber/v2"
)

// ExportController serves full-dataset exports and restores backups.
// The export document round-trips: importing an unchanged export and
// exporting again yields the same ids and values.
type ExportController struct {
	mutator
	backups *services.BackupService
}

func NewExportController(hub *websocket.Hub) *ExportController {
	return &ExportController{
		mutator: newMutator(hub),
		backups: services.NewBackupService(),
	}
}

// ExportDataset returns the whole dataset as one JSON document
func (ec *ExportController) ExportDataset(c *fiber.Ctx) error {
	export, err := ec.backups.ExportDataset()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export dataset",
		})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="schedule_backup.json"`)
	return c.JSON(export)
}

// ImportBackup restores a previously exported dataset. Existing rows
// with matching ids are updated, new rows are added, nothing is
// deleted.
func (ec *ExportController) ImportBackup(c *fiber.Ctx) error {
	var export services.DatasetExport
	if err := c.BodyParser(&export); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid backup document",
		})
	}

	if len(export.Programs) == 0 && len(export.Blocks) == 0 && len(export.Sessions) == 0 &&
		len(export.Courses) == 0 && len(export.Instructors) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Backup document is empty",
		})
	}

	if err := ec.backups.RestoreDataset(&export); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to restore dataset",
		})
	}

	ec.recordChange(c, "IMPORT", "dataset", "", fiber.Map{
		"programs":    len(export.Programs),
		"blocks":      len(export.Blocks),
		"courses":     len(export.Courses),
		"instructors": len(export.Instructors),
		"sessions":    len(export.Sessions),
	})

	return c.JSON(fiber.Map{
		"message":     "Dataset restored successfully",
		"programs":    len(export.Programs),
		"blocks":      len(export.Blocks),
		"courses":     len(export.Courses),
		"instructors": len(export.Instructors),
		"sessions":    len(export.Sessions),
	})
}
