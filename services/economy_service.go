package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/db"
	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

// EconomyService fronts the token economy engine. It evaluates the
// authorization predicate before every mutating call and fires notifications
// after the transaction commits; the atomicity itself lives in the repository.
type EconomyService interface {
	RedeemItem(user *models.User, itemID uuid.UUID) (*models.Redemption, error)
	TransitionRedemption(actor *models.User, redemptionID uuid.UUID, newStatus string) (*models.Redemption, error)
	ToggleVote(user *models.User, reportID uuid.UUID) (*models.VoteStateResponse, error)
	AddComment(user *models.User, reportID uuid.UUID, body string) (*models.Comment, error)
	DeleteComment(actor *models.User, commentID uint) error
	TransitionHazardStatus(actor *models.User, reportID uuid.UUID, newStatus string) (*models.HazardReport, error)
	GetBalance(userID uint) (int, error)
}

type economyService struct {
	Config       *config.Config
	economyRepo  db.EconomyRepository
	notification NotificationService
}

func NewEconomyService(economyRepo db.EconomyRepository, notification NotificationService, conf *config.Config) EconomyService {
	return &economyService{
		Config:       conf,
		economyRepo:  economyRepo,
		notification: notification,
	}
}

func (s *economyService) RedeemItem(user *models.User, itemID uuid.UUID) (*models.Redemption, error) {
	if user == nil {
		return nil, errs.ErrNotAuthorized
	}
	redemption, err := s.economyRepo.RedeemItem(user.ID, itemID)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":       user.ID,
		"item_id":       itemID,
		"redemption_id": redemption.ID,
	}).Info("redemption opened")
	return redemption, nil
}

func (s *economyService) TransitionRedemption(actor *models.User, redemptionID uuid.UUID, newStatus string) (*models.Redemption, error) {
	// Authorization runs before the record is even looked up, so a non-admin
	// learns nothing about whether the redemption exists.
	if !CanActOn(actor, ActionTransitionRedemption, 0) {
		return nil, errs.ErrNotAuthorized
	}
	redemption, err := s.economyRepo.TransitionRedemption(redemptionID, newStatus)
	if err != nil {
		return nil, err
	}
	if newStatus == models.RedemptionFulfilled && s.notification != nil {
		s.notification.RedemptionFulfilled(redemption)
	}
	return redemption, nil
}

func (s *economyService) ToggleVote(user *models.User, reportID uuid.UUID) (*models.VoteStateResponse, error) {
	if user == nil {
		return nil, errs.ErrNotAuthorized
	}
	return s.economyRepo.ToggleVote(user.ID, reportID)
}

func (s *economyService) AddComment(user *models.User, reportID uuid.UUID, body string) (*models.Comment, error) {
	if user == nil {
		return nil, errs.ErrNotAuthorized
	}
	comment := &models.Comment{
		Body:     body,
		ReportID: reportID,
		UserID:   user.ID,
	}
	if err := s.economyRepo.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *economyService) DeleteComment(actor *models.User, commentID uint) error {
	comment, err := s.economyRepo.GetCommentByID(commentID)
	if err != nil {
		return err
	}
	if !CanActOn(actor, ActionDeleteComment, comment.UserID) {
		return errs.ErrNotAuthorized
	}
	return s.economyRepo.DeleteComment(commentID)
}

func (s *economyService) TransitionHazardStatus(actor *models.User, reportID uuid.UUID, newStatus string) (*models.HazardReport, error) {
	if !CanActOn(actor, ActionTransitionReport, 0) {
		return nil, errs.ErrNotAuthorized
	}
	if newStatus != models.StatusActive && newStatus != models.StatusInvestigating && newStatus != models.StatusResolved {
		return nil, errs.ErrInvalidTransition
	}
	report, err := s.economyRepo.TransitionHazardStatus(reportID, newStatus)
	if err != nil {
		return nil, err
	}
	if s.notification != nil {
		s.notification.ReportStatusChanged(report)
	}
	return report, nil
}

func (s *economyService) GetBalance(userID uint) (int, error) {
	return s.economyRepo.GetUserBalance(userID)
}
