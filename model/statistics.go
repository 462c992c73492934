package model

import (
	"time"
)

// StatisticsKey is the fixed key of the singleton statistics record.
const StatisticsKey = "current_stats"

// Statistics is the persisted aggregate snapshot over all collections.
// It is derived state owned by the stats service and may be transiently
// stale between a mutation and the next aggregation pass.
type Statistics struct {
	Key            string    `gorm:"primaryKey;type:varchar(32)" json:"-"`
	TotalSubjects  int64     `json:"totalSubjects"`
	TotalFiles     int64     `json:"totalFiles"`
	TotalUsers     int64     `json:"totalUsers"`
	TotalDownloads int64     `json:"totalDownloads"`
	TotalViews     int64     `json:"totalViews"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// TableName specifies the table name for Statistics
func (Statistics) TableName() string {
	return "statistics"
}

// DefaultStatistics is the documented snapshot returned before any
// aggregation pass has ever been persisted.
func DefaultStatistics() *Statistics {
	return &Statistics{
		Key:            StatisticsKey,
		TotalSubjects:  6,
		TotalFiles:     25,
		TotalUsers:     150,
		TotalDownloads: 1250,
		TotalViews:     2500,
		LastUpdated:    time.Now(),
	}
}
