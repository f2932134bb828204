package models

import "github.com/google/uuid"

// Comment represents a user's comment on a hazard report
type Comment struct {
	Model
	Body     string    `json:"body" gorm:"type:varchar(1000);not null"`
	ReportID uuid.UUID `json:"report_id" gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	UserID   uint      `json:"user_id" gorm:"not null"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=1000"`
}
