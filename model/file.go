package model

import (
	"time"
)

// File represents a study material attached to a subject.
// SubjectID must reference an existing subject at creation time; the store
// does not enforce this structurally, the file service does.
type File struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SubjectID   uint   `gorm:"index;not null" json:"subject_id"`
	FileName    string `gorm:"index;not null" json:"file_name"`
	FileType    string `gorm:"type:varchar(20);index" json:"file_type,omitempty"`
	FileSize    string `gorm:"type:varchar(20)" json:"file_size,omitempty"` // human-readable, e.g. "2.4 MB"
	FileURL     string `gorm:"type:text" json:"file_url,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	UploadDate     time.Time  `gorm:"index" json:"upload_date"`
	Downloads      int64      `gorm:"not null;default:0;index" json:"downloads"`
	Views          int64      `gorm:"not null;default:0" json:"views"`
	LastDownloaded *time.Time `json:"last_downloaded,omitempty"`
	LastViewed     *time.Time `json:"last_viewed,omitempty"`

	// Relationships
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"-"`
}

// TableName specifies the table name for File
func (File) TableName() string {
	return "files"
}
