package model

import (
	"time"

	"gorm.io/datatypes"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an anonymous local-activity record, not an auth identity.
// ID is the store-local primary key; UserID is the external-facing
// numeric identity.
type User struct {
	ID          string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      int64          `gorm:"uniqueIndex;not null" json:"user_id"`
	Username    string         `gorm:"index" json:"username,omitempty"`
	FirstName   string         `json:"first_name,omitempty"`
	LastName    string         `json:"last_name,omitempty"`
	Role        string         `gorm:"type:varchar(20);default:'user';index" json:"role"`
	Email       string         `json:"email,omitempty"`
	Permissions datatypes.JSON `json:"permissions,omitempty"`
	JoinedAt    time.Time      `json:"joined_at"`
	LastActive  time.Time      `gorm:"index" json:"last_active"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
