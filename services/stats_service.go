package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studyshelf/catalog-api/model"
	"gorm.io/gorm"
)

// Default caps for the bounded "recent"/"popular" views.
const (
	DefaultPopularLimit = 10
	DefaultRecentLimit  = 20
	maxRankingLimit     = 100
)

// StatsService recomputes and serves the aggregate statistics snapshot
// and the popularity/recency rankings derived from live collections.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Recompute counts subjects, files and users, sums file downloads and
// views, and overwrites the singleton statistics record. It is triggered
// after every mutating operation and by the cron backstop.
func (s *StatsService) Recompute(ctx context.Context) (*model.Statistics, error) {
	return recomputeStatistics(s.db.WithContext(ctx))
}

// recomputeStatistics runs one aggregation pass on the given handle,
// which may be a transaction (the restore path recomputes inside its
// clear+repopulate transaction).
func recomputeStatistics(db *gorm.DB) (*model.Statistics, error) {
	stats := &model.Statistics{
		Key:         model.StatisticsKey,
		LastUpdated: time.Now(),
	}

	if err := db.Model(&model.Subject{}).Count(&stats.TotalSubjects).Error; err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}

	if err := db.Model(&model.File{}).Count(&stats.TotalFiles).Error; err != nil {
		return nil, fmt.Errorf("failed to count files: %w", err)
	}

	if err := db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var sums struct {
		Downloads int64
		Views     int64
	}
	if err := db.Model(&model.File{}).
		Select("COALESCE(SUM(downloads), 0) as downloads, COALESCE(SUM(views), 0) as views").
		Scan(&sums).Error; err != nil {
		return nil, fmt.Errorf("failed to sum file counters: %w", err)
	}
	stats.TotalDownloads = sums.Downloads
	stats.TotalViews = sums.Views

	if err := db.Save(stats).Error; err != nil {
		return nil, fmt.Errorf("failed to persist statistics: %w", err)
	}

	return stats, nil
}

// GetStatistics returns the last persisted snapshot, or the documented
// default snapshot if no aggregation pass has ever run.
func (s *StatsService) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics
	err := s.db.WithContext(ctx).
		Where("key = ?", model.StatisticsKey).
		First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultStatistics(), nil
		}
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}
	return &stats, nil
}

// PopularFiles returns files ranked by downloads descending. Ties keep
// insertion order.
func (s *StatsService) PopularFiles(ctx context.Context, limit int) ([]model.File, error) {
	var files []model.File
	if err := s.db.WithContext(ctx).
		Order("downloads DESC, id ASC").
		Limit(clampLimit(limit, DefaultPopularLimit)).
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular files: %w", err)
	}
	return files, nil
}

// RecentFiles returns files ranked by upload date descending.
func (s *StatsService) RecentFiles(ctx context.Context, limit int) ([]model.File, error) {
	var files []model.File
	if err := s.db.WithContext(ctx).
		Order("upload_date DESC, id DESC").
		Limit(clampLimit(limit, DefaultRecentLimit)).
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent files: %w", err)
	}
	return files, nil
}

// RecentUsers returns users ranked by last activity descending.
func (s *StatsService) RecentUsers(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).
		Order("last_active DESC").
		Limit(clampLimit(limit, DefaultRecentLimit)).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent users: %w", err)
	}
	return users, nil
}

// DashboardData is the aggregate view backing the dashboard screen.
type DashboardData struct {
	Statistics   *model.Statistics `json:"statistics"`
	Subjects     []model.Subject   `json:"subjects"`
	RecentFiles  []model.File      `json:"recentFiles"`
	PopularFiles []model.File      `json:"popularFiles"`
	RecentUsers  []model.User      `json:"recentUsers"`
}

// GetDashboardData assembles statistics, all subjects and the bounded
// recent/popular views in one call.
func (s *StatsService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	stats, err := s.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	var subjects []model.Subject
	if err := s.db.WithContext(ctx).Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}

	recentFiles, err := s.RecentFiles(ctx, 5)
	if err != nil {
		return nil, err
	}

	popularFiles, err := s.PopularFiles(ctx, 5)
	if err != nil {
		return nil, err
	}

	recentUsers, err := s.RecentUsers(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Statistics:   stats,
		Subjects:     subjects,
		RecentFiles:  recentFiles,
		PopularFiles: popularFiles,
		RecentUsers:  recentUsers,
	}, nil
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxRankingLimit {
		return maxRankingLimit
	}
	return limit
}
