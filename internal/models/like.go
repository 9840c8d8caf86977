package models

import (
	"time"
)

// Like represents a user's like on a doodle.
// The combination of UserID and DoodleID must be unique; the like count of a
// doodle is always derived by counting these rows.
type Like struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_doodle" json:"user_id"`
	DoodleID uint `gorm:"not null;uniqueIndex:idx_user_doodle" json:"doodle_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Doodle Doodle `gorm:"foreignKey:DoodleID" json:"doodle"`
}
