package model

import (
	"time"
)

// Subject represents a study subject that owns a collection of files
type Subject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Icon        string    `gorm:"type:varchar(100)" json:"icon,omitempty"`
	Color       string    `gorm:"type:varchar(20)" json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	// FilesCount is derived state maintained by file add/delete side effects.
	// It must always equal the number of files referencing this subject.
	FilesCount int64 `gorm:"not null;default:0" json:"files_count"`

	// Relationships
	Files []File `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// TableName specifies the table name for Subject
func (Subject) TableName() string {
	return "subjects"
}
