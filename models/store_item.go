package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreItem is a redeemable catalog entry. Admin-managed.
type StoreItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:varchar(1000)"`
	TokenCost   int       `json:"token_cost" gorm:"not null"`
	Available   bool      `json:"available" gorm:"default:true"`
	ImageURL    string    `json:"image_url,omitempty"`
}

type StoreItemRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
	TokenCost   int    `json:"token_cost" binding:"required,gt=0"`
	Available   *bool  `json:"available"`
	ImageURL    string `json:"image_url"`
}
