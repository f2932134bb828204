package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote records a user's vote on a hazard report. At most one row per
// (report, user) pair; the unique index backs the toggle semantics.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_report_user;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_report_user"`
}

type VoteStateResponse struct {
	ReportID  uuid.UUID `json:"report_id"`
	Voted     bool      `json:"voted"`
	VoteCount int       `json:"vote_count"`
}
