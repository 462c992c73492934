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

// SubjectService handles subject CRUD and the cascade delete that keeps
// files consistent with their owning subject.
type SubjectService struct {
	db    *gorm.DB
	stats *StatsService
}

// NewSubjectService creates a new subject service
func NewSubjectService(db *gorm.DB, stats *StatsService) *SubjectService {
	return &SubjectService{
		db:    db,
		stats: stats,
	}
}

// CreateSubjectRequest represents the request to create a subject
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Icon        string `json:"icon" validate:"omitempty,max=100"`
	Color       string `json:"color" validate:"omitempty,max=20"`
}

// UpdateSubjectRequest represents a partial subject update. Fields left
// unset are preserved on the stored record.
type UpdateSubjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
	Color       *string `json:"color" validate:"omitempty,max=20"`
}

// GetAll returns all subjects in store-native order.
func (s *SubjectService) GetAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := s.db.WithContext(ctx).Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}
	return subjects, nil
}

// GetByID returns one subject or database.ErrNotFound.
func (s *SubjectService) GetByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := s.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &subject, nil
}

// GetByName looks a subject up through the unique name index.
func (s *SubjectService) GetByName(ctx context.Context, name string) (*model.Subject, error) {
	var subject model.Subject
	if err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&subject).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &subject, nil
}

// Create adds a subject. A name collision fails with
// database.ErrDuplicateKey.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*model.Subject, error) {
	// Check the unique name index before inserting
	var existing model.Subject
	err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: subject name %q", database.ErrDuplicateKey, req.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subject name: %w", err)
	}

	subject := model.Subject{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Icon:        req.Icon,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&subject).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	s.recomputeStats(ctx)
	return &subject, nil
}

// Update shallow-merges the request into an existing subject.
// CreatedAt and FilesCount are never touched here; the counter is owned
// by file add/delete side effects.
func (s *SubjectService) Update(ctx context.Context, id uint, req UpdateSubjectRequest) (*model.Subject, error) {
	var subject model.Subject
	if err := s.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	if req.Name != nil && *req.Name != subject.Name {
		var existing model.Subject
		err := s.db.WithContext(ctx).
			Where("name = ? AND id != ?", *req.Name, id).
			First(&existing).Error
		if err == nil {
			return nil, fmt.Errorf("%w: subject name %q", database.ErrDuplicateKey, *req.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check subject name: %w", err)
		}
		subject.Name = *req.Name
	}
	if req.Description != nil {
		subject.Description = *req.Description
	}
	if req.Category != nil {
		subject.Category = *req.Category
	}
	if req.Icon != nil {
		subject.Icon = *req.Icon
	}
	if req.Color != nil {
		subject.Color = *req.Color
	}

	if err := s.db.WithContext(ctx).Save(&subject).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	return &subject, nil
}

// Delete removes a subject and every file that references it, in one
// transaction, then runs an aggregation pass. Deleting a subject with no
// files degenerates to a plain delete.
func (s *SubjectService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject model.Subject
		if err := tx.First(&subject, id).Error; err != nil {
			return database.TranslateError(err)
		}

		// Cascade: files first, then the subject itself
		if err := tx.Where("subject_id = ?", id).Delete(&model.File{}).Error; err != nil {
			return fmt.Errorf("failed to delete subject files: %w", err)
		}

		if err := tx.Delete(&model.Subject{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete subject: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.recomputeStats(ctx)
	return nil
}

// SubjectWithFiles is a subject joined with its owned files.
type SubjectWithFiles struct {
	model.Subject
	Files []model.File `json:"files"`
}

// GetWithFiles returns a subject together with all files attached to it.
func (s *SubjectService) GetWithFiles(ctx context.Context, id uint) (*SubjectWithFiles, error) {
	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var files []model.File
	if err := s.db.WithContext(ctx).
		Where("subject_id = ?", id).
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subject files: %w", err)
	}

	return &SubjectWithFiles{Subject: *subject, Files: files}, nil
}

// Search returns subjects matching the query, case-insensitively, across
// name, description and category. A linear scan is fine at this scale.
func (s *SubjectService) Search(ctx context.Context, query string) ([]model.Subject, error) {
	subjects, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterSubjects(subjects, query), nil
}

func (s *SubjectService) recomputeStats(ctx context.Context) {
	if _, err := s.stats.Recompute(ctx); err != nil {
		log.Printf("Warning: statistics recompute failed: %v", err)
	}
}
