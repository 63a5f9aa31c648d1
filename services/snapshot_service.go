package services

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/services/scheduler"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ErrNoActiveProgram indicates that no program is marked active
var ErrNoActiveProgram = errors.New("no active program configured")

const (
	datasetVersionKey = "dataset:version"
	viewCacheTTL      = 10 * time.Minute
)

// SnapshotService assembles immutable scheduler snapshots from the
// database and manages the Redis-backed projection cache. The core
// never touches storage itself; this is the seam between the two.
type SnapshotService struct{}

func NewSnapshotService() *SnapshotService {
	return &SnapshotService{}
}

// ActiveProgram returns the single active program
func (ss *SnapshotService) ActiveProgram() (models.Program, error) {
	var program models.Program
	if err := database.DB.Where("active = ?", true).First(&program).Error; err != nil {
		return models.Program{}, ErrNoActiveProgram
	}
	return program, nil
}

// LoadSnapshot reads the full dataset scoped to the active program and
// generates its calendar. Sessions without a program id are legacy/
// global and stay in scope. The returned snapshot is a fresh copy;
// callers may hold it across requests but must reload after mutations.
func (ss *SnapshotService) LoadSnapshot() (*scheduler.Snapshot, error) {
	program, err := ss.ActiveProgram()
	if err != nil {
		return nil, err
	}
	return ss.LoadSnapshotFor(program)
}

// LoadSnapshotFor builds a snapshot for the given program
func (ss *SnapshotService) LoadSnapshotFor(program models.Program) (*scheduler.Snapshot, error) {
	snap := &scheduler.Snapshot{Program: program}

	if err := database.DB.Order("block_order").Find(&snap.Blocks).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Order("id").Find(&snap.Courses).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Order("id").Find(&snap.Instructors).Error; err != nil {
		return nil, err
	}
	if err := database.DB.
		Where("program_id = ? OR program_id = ''", program.ID).
		Order("id").
		Find(&snap.Sessions).Error; err != nil {
		return nil, err
	}

	totalWeeks := program.TotalWeeks
	if totalWeeks == 0 {
		// Absent value: documented default. Present-and-invalid values
		// are rejected by GenerateCalendar below.
		totalWeeks = scheduler.DefaultTotalWeeks
	}

	start, err := scheduler.ParseStartDate(program.StartDate)
	if err != nil {
		// A program without a usable start date renders as an empty
		// schedule: every session stays unresolved until it is fixed.
		logrus.WithField("program_id", program.ID).Warn("Program has no valid start date; calendar is empty")
		return snap, nil
	}

	snap.Calendar, err = scheduler.GenerateCalendar(start, totalWeeks, program.Holidays)
	if err != nil {
		return nil, err
	}

	if got := scheduler.TotalWeekCount(snap.Blocks); got != totalWeeks {
		logrus.WithFields(logrus.Fields{
			"program_id":  program.ID,
			"block_weeks": got,
			"total_weeks": totalWeeks,
		}).Warn("Block week count does not match the program's total weeks")
	}

	return snap, nil
}

// DatasetVersion returns the monotonically increasing dataset version
// used to key cached projections. Version 0 means "cache disabled".
func (ss *SnapshotService) DatasetVersion(ctx context.Context) int64 {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return 0
	}
	v, err := redisClient.Get(ctx, datasetVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return 0
	}
	return v
}

// BumpDatasetVersion invalidates every cached projection. Called after
// any mutation of programs, blocks, courses, instructors or sessions.
func (ss *SnapshotService) BumpDatasetVersion(ctx context.Context) {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return
	}
	if err := redisClient.Incr(ctx, datasetVersionKey).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to bump dataset version")
	}
}

// CachedProjection returns a cached projection for the filter set, if any
func (ss *SnapshotService) CachedProjection(ctx context.Context, filters scheduler.Filters) (*scheduler.Projection, bool) {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return nil, false
	}
	data, err := redisClient.Get(ctx, ss.viewCacheKey(ctx, filters)).Bytes()
	if err != nil {
		return nil, false
	}
	var projection scheduler.Projection
	if err := json.Unmarshal(data, &projection); err != nil {
		return nil, false
	}
	return &projection, true
}

// CacheProjection stores a projection under the current dataset version
func (ss *SnapshotService) CacheProjection(ctx context.Context, filters scheduler.Filters, projection *scheduler.Projection) {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return
	}
	data, err := json.Marshal(projection)
	if err != nil {
		return
	}
	if err := redisClient.Set(ctx, ss.viewCacheKey(ctx, filters), data, viewCacheTTL).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to cache projection")
	}
}

func (ss *SnapshotService) viewCacheKey(ctx context.Context, filters scheduler.Filters) string {
	raw := fmt.Sprintf("%s|%d|%s|%s|%s|%s",
		filters.ProgramID, filters.Week, filters.BlockID, filters.Location, filters.Instructor, filters.Date)
	return fmt.Sprintf("schedule:view:%d:%x", ss.DatasetVersion(ctx), md5.Sum([]byte(raw)))
}
