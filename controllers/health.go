package controllers

import (
	"context"
	"time"

	"courseschedule_go/database"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct{}

// GetHealthStatus reports service, database and cache health
func (hc *HealthController) GetHealthStatus(c *fiber.Ctx) error {
	status := "ok"
	statusCode := fiber.StatusOK

	dbStatus := "up"
	if database.DB == nil {
		dbStatus = "down"
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}
	if dbStatus == "down" {
		status = "degraded"
		statusCode = fiber.StatusServiceUnavailable
	}

	// Redis is optional: the service works without the cache
	redisStatus := "up"
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		redisStatus = "down"
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":   status,
		"service":  "Course Schedule API",
		"version":  "1.0.0",
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
