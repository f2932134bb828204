package models

import (
	"time"

	"github.com/google/uuid"
)

// Redemption statuses. Pending is the only non-terminal state.
const (
	RedemptionPending   = "pending"
	RedemptionFulfilled = "fulfilled"
	RedemptionCancelled = "cancelled"
)

// Redemption is a user's request to exchange tokens for a store item. The item
// cost is deducted once, at creation. Cancellation does not refund the deducted
// tokens; that mirrors the original product behaviour and is deliberate until
// product says otherwise.
type Redemption struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ItemID      uuid.UUID  `json:"item_id" gorm:"type:uuid;not null"`
	Item        StoreItem  `json:"item" gorm:"foreignKey:ItemID"`
	Status      string     `json:"status" gorm:"type:varchar(32);not null;default:'pending'"`
	FulfilledAt *time.Time `json:"fulfilled_at,omitempty"`
}

// CanTransitionRedemption reports whether a redemption may move from one status
// to another. Only pending->fulfilled and pending->cancelled are allowed.
func CanTransitionRedemption(from, to string) bool {
	if from != RedemptionPending {
		return false
	}
	return to == RedemptionFulfilled || to == RedemptionCancelled
}

type RedeemRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

type TransitionRedemptionRequest struct {
	Status string `json:"status" binding:"required"`
}
