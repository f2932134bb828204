package db

import (
	"gorm.io/gorm"

	"github.com/techagentng/hazardx/models"
)

type NotificationRepository interface {
	SaveNotification(n *models.Notification) error
	GetNotificationsByUser(userID uint) ([]models.Notification, error)
	MarkSeen(userID uint, notificationID uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) SaveNotification(n *models.Notification) error {
	return r.DB.Create(n).Error
}

func (r *notificationRepo) GetNotificationsByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(50).Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) MarkSeen(userID uint, notificationID uint) error {
	return r.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("seen", true).Error
}
