package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base for tables keyed by an auto-incrementing id
type Model struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// SaturatingSub subtracts delta from value without going below zero. Every counter
// decrement in the engine goes through this one primitive so clamping behaves the
// same at every call site.
func SaturatingSub(value, delta int) int {
	if delta >= value {
		return 0
	}
	return value - delta
}
