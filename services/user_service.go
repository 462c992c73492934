package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/studyshelf/catalog-api/database"
	"github.com/studyshelf/catalog-api/model"
	"gorm.io/gorm"
)

// UserService handles anonymous local-activity records. Users are
// independent of subjects and files and are never cascade-deleted.
type UserService struct {
	db    *gorm.DB
	stats *StatsService
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, stats *StatsService) *UserService {
	return &UserService{
		db:    db,
		stats: stats,
	}
}

// CreateUserRequest represents an explicit user add
type CreateUserRequest struct {
	UserID    int64  `json:"user_id" validate:"required"`
	Username  string `json:"username" validate:"omitempty,max=100"`
	FirstName string `json:"first_name" validate:"omitempty,max=255"`
	LastName  string `json:"last_name" validate:"omitempty,max=255"`
	Role      string `json:"role" validate:"omitempty,oneof=admin user"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=100"`
	FirstName *string `json:"first_name" validate:"omitempty,max=255"`
	LastName  *string `json:"last_name" validate:"omitempty,max=255"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin user"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// GetAll returns all users in store-native order.
func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// GetByID returns one user by local primary key.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// GetByUserID looks a user up through the unique user_id index.
func (s *UserService) GetByUserID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// Create adds a user. A user_id collision fails with
// database.ErrDuplicateKey.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	var existing model.User
	err := s.db.WithContext(ctx).Where("user_id = ?", req.UserID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: user_id %d", database.ErrDuplicateKey, req.UserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user_id: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	now := time.Now()
	user := model.User{
		ID:         "user_" + uuid.NewString(),
		UserID:     req.UserID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       role,
		Email:      req.Email,
		JoinedAt:   now,
		LastActive: now,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	s.recomputeStats(ctx)
	return &user, nil
}

// Update shallow-merges the request into an existing user. JoinedAt is
// immutable; LastActive is owned by Touch.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	return &user, nil
}

// Delete removes a user record. Nothing cascades from it.
func (s *UserService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}

	s.recomputeStats(ctx)
	return nil
}

// Touch records activity for an external user id: an existing record gets
// its last_active stamped, an unknown id gets a fresh record with a
// generated username. Idempotent across a session.
func (s *UserService) Touch(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.GetByUserID(ctx, userID)
	if err == nil {
		user.LastActive = time.Now()
		if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
			return nil, fmt.Errorf("failed to update user activity: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	localID := "user_" + uuid.NewString()
	now := time.Now()
	fresh := model.User{
		ID:         localID,
		UserID:     userID,
		Username:   "user_" + localID[len(localID)-8:],
		FirstName:  "Guest",
		Role:       model.RoleUser,
		JoinedAt:   now,
		LastActive: now,
	}

	if err := s.db.WithContext(ctx).Create(&fresh).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	s.recomputeStats(ctx)
	return &fresh, nil
}

func (s *UserService) recomputeStats(ctx context.Context) {
	if _, err := s.stats.Recompute(ctx); err != nil {
		log.Printf("Warning: statistics recompute failed: %v", err)
	}
}
