package controllers

import (
	"errors"

	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/scheduler"
	"courseschedule_go/services/websocket"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BlockController struct {
	mutator
}

func NewBlockController(hub *websocket.Hub) *BlockController {
	return &BlockController{mutator: newMutator(hub)}
}

// GetBlocks returns all blocks in schedule order
func (bc *BlockController) GetBlocks(c *fiber.Ctx) error {
	var blocks []models.Block
	if err := database.DB.Order("block_order").Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch blocks",
		})
	}

	return c.JSON(fiber.Map{
		"blocks":      blocks,
		"total":       len(blocks),
		"total_weeks": scheduler.TotalWeekCount(blocks),
	})
}

// CreateBlock appends a new block after the last scheduled week
func (bc *BlockController) CreateBlock(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var blocks []models.Block
	if err := database.DB.Order("block_order").Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch blocks",
		})
	}

	_, block, err := scheduler.Insert(blocks, req.Name, req.Color)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, scheduler.ErrInvalidInput) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := database.DB.Create(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create block",
		})
	}

	bc.recordChange(c, "CREATE", "blocks", block.ID, block)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Block created successfully",
		"block":   block,
	})
}

// ReorderBlocks moves one block to a new position and persists the
// resulting dense order and week spans for every block.
func (bc *BlockController) ReorderBlocks(c *fiber.Ctx) error {
	var req struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Block id is required",
		})
	}

	var blocks []models.Block
	if err := database.DB.Order("block_order").Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch blocks",
		})
	}

	reordered, err := scheduler.Reorder(blocks, req.ID, req.Position)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, scheduler.ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, block := range reordered {
			if err := tx.Model(&models.Block{}).
				Where("id = ?", block.ID).
				Updates(map[string]interface{}{
					"block_order": block.Order,
					"weeks":       block.Weeks,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to persist block order",
		})
	}

	bc.recordChange(c, "REORDER", "blocks", req.ID, fiber.Map{
		"position": req.Position,
	})

	return c.JSON(fiber.Map{
		"message": "Blocks reordered successfully",
		"blocks":  reordered,
	})
}
