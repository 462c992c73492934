package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/studyshelf/catalog-api/database"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/gorm"
)

// FileService handles file CRUD, the denormalized files_count on the
// owning subject, and the monotonic download/view counters.
//
// Every mutation that touches files_count runs inside a transaction and
// adjusts the counter with a SQL expression, so two concurrent file
// mutations against one subject serialize at the store instead of racing
// on a read-modify-write.
type FileService struct {
	db    *gorm.DB
	stats *StatsService
}

// NewFileService creates a new file service
func NewFileService(db *gorm.DB, stats *StatsService) *FileService {
	return &FileService{
		db:    db,
		stats: stats,
	}
}

// CreateFileRequest represents the request to attach a file to a subject
type CreateFileRequest struct {
	SubjectID   uint   `json:"subject_id" validate:"required"`
	FileName    string `json:"file_name" validate:"required,min=1,max=512"`
	FileType    string `json:"file_type" validate:"omitempty,max=20"`
	FileSize    string `json:"file_size" validate:"omitempty,max=20"`
	FileURL     string `json:"file_url" validate:"omitempty,max=2048"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateFileRequest represents a partial file metadata update. Counters
// and timestamps are not updatable through this path.
type UpdateFileRequest struct {
	FileName    *string `json:"file_name" validate:"omitempty,min=1,max=512"`
	FileType    *string `json:"file_type" validate:"omitempty,max=20"`
	FileSize    *string `json:"file_size" validate:"omitempty,max=20"`
	FileURL     *string `json:"file_url" validate:"omitempty,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// GetAll returns all files in store-native order.
func (s *FileService) GetAll(ctx context.Context) ([]model.File, error) {
	var files []model.File
	if err := s.db.WithContext(ctx).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch files: %w", err)
	}
	return files, nil
}

// GetByID returns one file or database.ErrNotFound.
func (s *FileService) GetByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	if err := s.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &file, nil
}

// GetBySubject returns the files owned by a subject through the
// subject_id index. No matches is success with zero rows.
func (s *FileService) GetBySubject(ctx context.Context, subjectID uint) ([]model.File, error) {
	var files []model.File
	if err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch files for subject: %w", err)
	}
	return files, nil
}

// GetByName returns the files matching a file name through the file_name
// index. The index is not unique, so this is a sequence.
func (s *FileService) GetByName(ctx context.Context, name string) ([]model.File, error) {
	var files []model.File
	if err := s.db.WithContext(ctx).
		Where("file_name = ?", name).
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch files by name: %w", err)
	}
	return files, nil
}

// Create attaches a file to an existing subject and increments the
// subject's files_count. An unknown subject_id is rejected with
// database.ErrNotFound; orphan files are not creatable through this API.
func (s *FileService) Create(ctx context.Context, req CreateFileRequest) (*model.File, error) {
	file := model.File{
		SubjectID:   req.SubjectID,
		FileName:    req.FileName,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		FileURL:     req.FileURL,
		Description: req.Description,
		UploadDate:  time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read the parent inside the transaction so a concurrent
		// subject delete cannot interleave between check and insert.
		var subject model.Subject
		if err := tx.First(&subject, req.SubjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: subject %d", database.ErrNotFound, req.SubjectID)
			}
			return fmt.Errorf("failed to fetch subject: %w", err)
		}

		if err := tx.Create(&file).Error; err != nil {
			return database.TranslateError(err)
		}

		if err := tx.Model(&model.Subject{}).
			Where("id = ?", req.SubjectID).
			Update("files_count", gorm.Expr("files_count + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment files_count: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recomputeStats(ctx)
	return &file, nil
}

// Update shallow-merges metadata fields into an existing file.
func (s *FileService) Update(ctx context.Context, id uint, req UpdateFileRequest) (*model.File, error) {
	var file model.File
	if err := s.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	if req.FileName != nil {
		file.FileName = *req.FileName
	}
	if req.FileType != nil {
		file.FileType = *req.FileType
	}
	if req.FileSize != nil {
		file.FileSize = *req.FileSize
	}
	if req.FileURL != nil {
		file.FileURL = *req.FileURL
	}
	if req.Description != nil {
		file.Description = *req.Description
	}

	if err := s.db.WithContext(ctx).Save(&file).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	return &file, nil
}

// Delete removes a file and decrements the owning subject's files_count,
// never below zero, then runs an aggregation pass.
func (s *FileService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var file model.File
		if err := tx.First(&file, id).Error; err != nil {
			return database.TranslateError(err)
		}

		if err := tx.Delete(&model.File{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete file: %w", err)
		}

		if err := tx.Model(&model.Subject{}).
			Where("id = ?", file.SubjectID).
			Update("files_count",
				gorm.Expr("CASE WHEN files_count > 0 THEN files_count - 1 ELSE 0 END")).Error; err != nil {
			return fmt.Errorf("failed to decrement files_count: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.recomputeStats(ctx)
	return nil
}

// IncrementDownloads bumps the download counter and stamps
// last_downloaded. Counters only ever grow; the only way down is delete.
func (s *FileService) IncrementDownloads(ctx context.Context, id uint) (*model.File, error) {
	return s.incrementCounter(ctx, id, "downloads", "last_downloaded")
}

// IncrementViews bumps the view counter and stamps last_viewed.
func (s *FileService) IncrementViews(ctx context.Context, id uint) (*model.File, error) {
	return s.incrementCounter(ctx, id, "views", "last_viewed")
}

func (s *FileService) incrementCounter(ctx context.Context, id uint, counter, stamp string) (*model.File, error) {
	var file model.File
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&file, id).Error; err != nil {
			return database.TranslateError(err)
		}

		if err := tx.Model(&model.File{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				counter: gorm.Expr(counter + " + 1"),
				stamp:   time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to increment %s: %w", counter, err)
		}

		return tx.First(&file, id).Error
	})
	if err != nil {
		return nil, err
	}

	s.recomputeStats(ctx)
	return &file, nil
}

func (s *FileService) recomputeStats(ctx context.Context) {
	if _, err := s.stats.Recompute(ctx); err != nil {
		log.Printf("Warning: statistics recompute failed: %v", err)
	}
}
