package models

// DeviceToken holds a user's FCM registration token for push notifications
type DeviceToken struct {
	Model
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Token  string `json:"token" gorm:"type:varchar(512);not null"`
}

// Notification is an in-app copy of a message pushed to the user
type Notification struct {
	Model
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Seen   bool   `json:"seen" gorm:"default:false"`
}
