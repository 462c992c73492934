package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/studyshelf/catalog-api/database"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/gorm"
)

// BackupVersion is the snapshot format version this build produces and
// accepts.
const BackupVersion = "1.0"

// Snapshot is the portable serialization of all collections.
type Snapshot struct {
	Version    string           `json:"version"`
	Timestamp  time.Time        `json:"timestamp"`
	Subjects   []model.Subject  `json:"subjects"`
	Files      []model.File     `json:"files"`
	Users      []model.User     `json:"users"`
	Statistics model.Statistics `json:"statistics"`
}

// BackupService serializes the full data set and reloads snapshots
// transactionally.
type BackupService struct {
	db    *gorm.DB
	stats *StatsService
}

// NewBackupService creates a new backup service
func NewBackupService(db *gorm.DB, stats *StatsService) *BackupService {
	return &BackupService{
		db:    db,
		stats: stats,
	}
}

// Backup reads all four collections into a versioned snapshot stamped
// with the current supported version.
func (s *BackupService) Backup(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{
		Version:   BackupVersion,
		Timestamp: time.Now(),
	}

	db := s.db.WithContext(ctx)
	if err := db.Order("id ASC").Find(&snapshot.Subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to read subjects: %w", err)
	}
	if err := db.Order("id ASC").Find(&snapshot.Files).Error; err != nil {
		return nil, fmt.Errorf("failed to read files: %w", err)
	}
	if err := db.Find(&snapshot.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	stats, err := s.stats.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Statistics = *stats

	return snapshot, nil
}

// BackupFileName returns the download name for a snapshot taken at t,
// e.g. "backup_2025-01-31.json".
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("backup_%s.json", t.Format("2006-01-02"))
}

// Restore replaces the entire data set with the snapshot contents.
//
// The version is checked before anything is touched. Clear and
// repopulate run inside a single transaction, so a failure mid-restore
// rolls back to the pre-restore state instead of leaving the store
// half-cleared. Ids are preserved on insert (both supported drivers
// accept explicit primary keys), which keeps File.SubjectID references
// valid without remapping. Statistics are regenerated, not restored
// verbatim.
func (s *BackupService) Restore(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil || snapshot.Version != BackupVersion {
		version := "<nil>"
		if snapshot != nil {
			version = snapshot.Version
		}
		return fmt.Errorf("%w: %s", database.ErrUnsupportedVersion, version)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear every collection; statistics is regenerated below
		if err := tx.Where("1 = 1").Delete(&model.File{}).Error; err != nil {
			return fmt.Errorf("failed to clear files: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.Subject{}).Error; err != nil {
			return fmt.Errorf("failed to clear subjects: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.User{}).Error; err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.Statistics{}).Error; err != nil {
			return fmt.Errorf("failed to clear statistics: %w", err)
		}

		// Repopulate in snapshot order: subjects, then files, then users
		if len(snapshot.Subjects) > 0 {
			if err := tx.Create(&snapshot.Subjects).Error; err != nil {
				return fmt.Errorf("failed to restore subjects: %w", err)
			}
		}
		if len(snapshot.Files) > 0 {
			if err := tx.Create(&snapshot.Files).Error; err != nil {
				return fmt.Errorf("failed to restore files: %w", err)
			}
		}
		if len(snapshot.Users) > 0 {
			if err := tx.Create(&snapshot.Users).Error; err != nil {
				return fmt.Errorf("failed to restore users: %w", err)
			}
		}

		// One aggregation pass before commit
		if _, err := recomputeStatistics(tx); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrRestoreFailed, err)
	}

	log.Printf("Restored snapshot from %s: %d subjects, %d files, %d users",
		snapshot.Timestamp.Format(time.RFC3339),
		len(snapshot.Subjects), len(snapshot.Files), len(snapshot.Users))
	return nil
}
