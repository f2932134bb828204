package models

import (
	"time"

	"github.com/google/uuid"
)

// Hazard types a report can carry. Anything the classifier cannot place lands in
// HazardOther.
const (
	HazardPothole      = "pothole"
	HazardWaterlogging = "waterlogging"
	HazardOther        = "other"
)

// Report lifecycle statuses. Transitions only move forward; see CanTransitionStatus.
const (
	StatusActive        = "active"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"
)

// DefaultTokenReward is credited to the reporter when a report is created, unless
// the request carries an explicit reward. Fixed at creation, credited exactly once.
const DefaultTokenReward = 10

// HazardReport is a geolocated hazard submitted by a user. VoteCount and
// CommentCount are denormalized counters kept equal to the vote/comment row counts
// by the engine; nothing else may write them.
type HazardReport struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	HazardType   string    `json:"hazard_type" gorm:"type:varchar(32);not null;default:'other'"`
	Description  string    `json:"description" gorm:"type:varchar(1000)"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Address      string    `json:"address"`
	Status       string    `json:"status" gorm:"type:varchar(32);not null;default:'active'"`
	VoteCount    int       `json:"vote_count" gorm:"not null;default:0"`
	CommentCount int       `json:"comment_count" gorm:"not null;default:0"`
	ImageURL     string    `json:"image_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	TokenReward  int       `json:"token_reward" gorm:"not null;default:10"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ValidHazardType reports whether t is one of the known hazard types.
func ValidHazardType(t string) bool {
	switch t {
	case HazardPothole, HazardWaterlogging, HazardOther:
		return true
	}
	return false
}

// CanTransitionStatus reports whether a hazard report may move from one status to
// another. Allowed: active->investigating, investigating->resolved, and
// active->resolved directly. Resolved is terminal.
func CanTransitionStatus(from, to string) bool {
	switch from {
	case StatusActive:
		return to == StatusInvestigating || to == StatusResolved
	case StatusInvestigating:
		return to == StatusResolved
	}
	return false
}

type CreateReportRequest struct {
	HazardType  string  `json:"hazard_type"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
	Address     string  `json:"address"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReportStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ReportTypeCount struct {
	HazardType string `json:"hazard_type"`
	Count      int64  `json:"count"`
}
