package controllers

import (
	"context"

	"courseschedule_go/middleware"
	"courseschedule_go/services"
	"courseschedule_go/services/websocket"
	"courseschedule_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// mutator bundles the plumbing every write endpoint shares: activity
// logging, projection-cache invalidation and websocket fan-out.
type mutator struct {
	hub       *websocket.Hub
	snapshots *services.SnapshotService
}

func newMutator(hub *websocket.Hub) mutator {
	return mutator{hub: hub, snapshots: services.NewSnapshotService()}
}

// recordChange runs after every successful mutation. Cached projections
// are keyed by dataset version, so bumping the version retires them all.
func (m mutator) recordChange(c *fiber.Ctx, action, resource, resourceID string, details interface{}) {
	middleware.LogActivity(c, action, resource, resourceID, details)
	m.snapshots.BumpDatasetVersion(context.Background())
	if m.hub != nil {
		m.hub.NotifyDatasetChanged(resource, action)
	}
}

// nextSequentialID returns the first unused "i001"-style id for the
// given model. Soft-deleted rows still occupy their id, so the probe
// runs unscoped. Callers inside a transaction must pass the tx handle
// so ids allocated earlier in the same transaction are visible.
func nextSequentialID(db *gorm.DB, prefix string, model interface{}) (string, error) {
	var count int64
	if err := db.Unscoped().Model(model).Count(&count).Error; err != nil {
		return "", err
	}
	for n := int(count) + 1; ; n++ {
		id := utils.SequentialID(prefix, n)
		var found int64
		if err := db.Unscoped().Model(model).Where("id = ?", id).Count(&found).Error; err != nil {
			return "", err
		}
		if found == 0 {
			return id, nil
		}
	}
}
