package models

// Blacklist stores access tokens invalidated by logout
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"type:varchar(512);index"`
	Email string `json:"email"`
}
