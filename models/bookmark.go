package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark lets a user keep a hazard report on their watch list
type Bookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmarks_user_report"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_report"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
