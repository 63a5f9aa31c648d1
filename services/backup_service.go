package services

import (
	"encoding/json"
	"fmt"
	"time"

	"courseschedule_go/config"
	"courseschedule_go/database"
	"courseschedule_go/models"
	"courseschedule_go/storage"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatasetExport is the full-dataset JSON document produced by the export
// endpoint and the nightly backup. Every field round-trips verbatim:
// importing an unchanged export and exporting again yields the same
// document (ids included).
type DatasetExport struct {
	Programs    []models.Program    `json:"programs"`
	Blocks      []models.Block      `json:"blocks"`
	Courses     []models.Course     `json:"courses"`
	Instructors []models.Instructor `json:"instructors"`
	Sessions    []models.Session    `json:"sessions"`
	ExportedAt  time.Time           `json:"exported_at"`
}

// BackupService exports and restores the whole dataset and pushes
// nightly snapshots to S3.
type BackupService struct {
	cron *cron.Cron
}

func NewBackupService() *BackupService {
	return &BackupService{}
}

// ExportDataset reads every entity table into one export document
func (bs *BackupService) ExportDataset() (*DatasetExport, error) {
	export := &DatasetExport{ExportedAt: time.Now().UTC()}

	if err := database.DB.Order("id").Find(&export.Programs).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Order("block_order").Find(&export.Blocks).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Order("id").Find(&export.Courses).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Order("id").Find(&export.Instructors).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Order("id").Find(&export.Sessions).Error; err != nil {
		return nil, err
	}

	return export, nil
}

// RestoreDataset upserts every entity from an export document inside one
// transaction. Ids are preserved so a restore of an unchanged export is
// a no-op. Nothing is deleted: restore adds and updates only.
func (bs *BackupService) RestoreDataset(export *DatasetExport) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{UpdateAll: true}

		for _, program := range export.Programs {
			if err := tx.Clauses(upsert).Create(&program).Error; err != nil {
				return err
			}
		}
		for _, block := range export.Blocks {
			if err := tx.Clauses(upsert).Create(&block).Error; err != nil {
				return err
			}
		}
		for _, course := range export.Courses {
			if err := tx.Clauses(upsert).Create(&course).Error; err != nil {
				return err
			}
		}
		for _, instructor := range export.Instructors {
			if err := tx.Clauses(upsert).Create(&instructor).Error; err != nil {
				return err
			}
		}
		for _, session := range export.Sessions {
			session.InstructorIDs = session.InstructorIDs.Dedupe()
			if err := tx.Clauses(upsert).Create(&session).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RunBackup exports the dataset and uploads it to S3
func (bs *BackupService) RunBackup() {
	export, err := bs.ExportDataset()
	if err != nil {
		logrus.WithError(err).Error("Backup: dataset export failed")
		return
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("Backup: marshal failed")
		return
	}

	if !config.AppConfig.BackupToS3 {
		logrus.WithField("bytes", len(data)).Info("Backup: S3 upload disabled, snapshot skipped")
		return
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		logrus.WithError(err).Error("Backup: storage init failed")
		return
	}

	key := fmt.Sprintf("backups/schedule_backup_%s_%s.json",
		time.Now().UTC().Format("2006-01-02"),
		uuid.New().String()[:8],
	)
	url, err := storageService.UploadJSON(key, data)
	if err != nil {
		logrus.WithError(err).Error("Backup: upload failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"key":   key,
		"url":   url,
		"bytes": len(data),
	}).Info("Backup uploaded")
}

// StartScheduler runs nightly backups on the configured cron spec
func (bs *BackupService) StartScheduler() {
	bs.cron = cron.New()
	if _, err := bs.cron.AddFunc(config.AppConfig.BackupCron, bs.RunBackup); err != nil {
		logrus.WithError(err).Error("Backup: invalid cron spec, scheduler not started")
		return
	}
	bs.cron.Start()
	logrus.WithField("cron", config.AppConfig.BackupCron).Info("Backup scheduler started")
}

// Stop halts the backup scheduler
func (bs *BackupService) Stop() {
	if bs.cron != nil {
		bs.cron.Stop()
	}
}
