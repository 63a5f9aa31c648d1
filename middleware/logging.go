package middleware

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"courseschedule_go/database"
	"courseschedule_go/models"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Log request
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logrus.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"duration":   duration.String(),
			"ip":         c.IP(),
			"user_agent": c.Get("User-Agent"),
		}).Info("HTTP Request")

		return err
	}
}

// LogActivity records a dataset mutation. Entries are cached in Redis
// first (write-behind, flushed to the database by the archive service);
// when Redis is unavailable they go straight to the database so no
// mutation is lost.
func LogActivity(c *fiber.Ctx, action, resource, resourceID string, details interface{}) {
	var detailsJSON models.JSON
	if details != nil {
		if detailsBytes, err := json.Marshal(details); err == nil {
			detailsJSON = detailsBytes
		}
	}

	entry := models.ActivityLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    detailsJSON,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	}
	entry.CreatedAt = time.Now()

	if err := cacheActivityLog(&entry); err != nil {
		if dbErr := database.DB.Create(&entry).Error; dbErr != nil {
			logrus.WithError(dbErr).Error("Failed to persist activity log")
		}
	}

	logrus.WithFields(logrus.Fields{
		"action":      action,
		"resource":    resource,
		"resource_id": resourceID,
		"ip":          entry.IPAddress,
	}).Info("Activity logged")
}

// cacheActivityLog stores the entry in Redis and enqueues it for the
// periodic flush into the database.
func cacheActivityLog(entry *models.ActivityLog) error {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return fmt.Errorf("redis client is nil")
	}

	logData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("log:%x", md5.Sum(logData))

	if err := redisClient.Set(ctx, cacheKey, logData, 24*time.Hour).Err(); err != nil {
		return err
	}
	return redisClient.ZAdd(ctx, "logs:queue", &redis.Z{
		Score:  float64(entry.CreatedAt.Unix()),
		Member: cacheKey,
	}).Err()
}
