package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/messaging"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/hazardx/db"
	"github.com/techagentng/hazardx/mailingservices"
	"github.com/techagentng/hazardx/models"
)

// NotificationService delivers best-effort notifications after engine
// operations commit. Delivery failures are logged, never propagated: a lost
// push must not roll back a fulfilled redemption.
type NotificationService interface {
	RedemptionFulfilled(redemption *models.Redemption)
	ReportStatusChanged(report *models.HazardReport)
	RegisterDevice(userID uint, token string) error
	GetUserNotifications(userID uint) ([]models.Notification, error)
	MarkSeen(userID uint, notificationID uint) error
}

type notificationService struct {
	notificationRepo db.NotificationRepository
	authRepo         db.AuthRepository
	messagingClient  *messaging.Client
	mail             *mailingservices.Mailgun
}

func NewNotificationService(notificationRepo db.NotificationRepository, authRepo db.AuthRepository, messagingClient *messaging.Client, mail *mailingservices.Mailgun) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		authRepo:         authRepo,
		messagingClient:  messagingClient,
		mail:             mail,
	}
}

func (s *notificationService) RedemptionFulfilled(redemption *models.Redemption) {
	title := "Redemption fulfilled"
	body := fmt.Sprintf("Your redemption for %q has been fulfilled.", redemption.Item.Name)
	s.persistAndPush(redemption.UserID, title, body)

	if s.mail == nil {
		return
	}
	user, err := s.authRepo.FindUserByID(redemption.UserID)
	if err != nil {
		logrus.Errorf("notification: could not load user %d: %v", redemption.UserID, err)
		return
	}
	if err := s.mail.SendRedemptionFulfilledMail(user.Email, redemption.Item.Name); err != nil {
		logrus.Errorf("notification: mail to %s failed: %v", user.Email, err)
	}
}

func (s *notificationService) ReportStatusChanged(report *models.HazardReport) {
	title := "Report status updated"
	body := fmt.Sprintf("Your %s report is now %s.", report.HazardType, report.Status)
	s.persistAndPush(report.UserID, title, body)
}

func (s *notificationService) persistAndPush(userID uint, title, body string) {
	n := &models.Notification{UserID: userID, Title: title, Body: body}
	if err := s.notificationRepo.SaveNotification(n); err != nil {
		logrus.Errorf("notification: could not persist for user %d: %v", userID, err)
	}

	if s.messagingClient == nil {
		return
	}
	tokens, err := s.authRepo.DeviceTokensForUser(userID)
	if err != nil {
		logrus.Errorf("notification: could not load device tokens for user %d: %v", userID, err)
		return
	}
	for _, token := range tokens {
		msg := &messaging.Message{
			Notification: &messaging.Notification{Title: title, Body: body},
			Token:        token,
		}
		if _, err := s.messagingClient.Send(context.Background(), msg); err != nil {
			logrus.Errorf("notification: push to user %d failed: %v", userID, err)
		}
	}
}

func (s *notificationService) RegisterDevice(userID uint, token string) error {
	return s.authRepo.SaveDeviceToken(&models.DeviceToken{UserID: userID, Token: token})
}

func (s *notificationService) GetUserNotifications(userID uint) ([]models.Notification, error) {
	return s.notificationRepo.GetNotificationsByUser(userID)
}

func (s *notificationService) MarkSeen(userID uint, notificationID uint) error {
	return s.notificationRepo.MarkSeen(userID, notificationID)
}
