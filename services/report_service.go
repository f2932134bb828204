package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/db"
	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

type ReportService interface {
	CreateReport(user *models.User, req *models.CreateReportRequest, imageURL, thumbnailURL string) (*models.HazardReport, error)
	GetReport(reportID uuid.UUID) (*models.HazardReport, error)
	ListReports(page int) ([]models.HazardReport, error)
	ListReportsByStatus(status string, page int) ([]models.HazardReport, error)
	ListReportsByType(hazardType string, page int) ([]models.HazardReport, error)
	ListUserReports(userID uint) ([]models.HazardReport, error)
	ListComments(reportID uuid.UUID) ([]models.Comment, error)
	UpdateReport(actor *models.User, reportID uuid.UUID, req *models.CreateReportRequest) (*models.HazardReport, error)
	DeleteReport(actor *models.User, reportID uuid.UUID) error
	GetVoteState(userID uint, reportID uuid.UUID) (*models.VoteStateResponse, error)
	BookmarkReport(user *models.User, reportID uuid.UUID) error
	ListBookmarks(userID uint) ([]models.HazardReport, error)
	StatusCounts() ([]models.ReportStatusCount, error)
	TypeCounts() ([]models.ReportTypeCount, error)
	TotalReports() (int64, error)
}

type reportService struct {
	Config      *config.Config
	reportRepo  db.ReportRepository
	economyRepo db.EconomyRepository
	classifier  Classifier
}

func NewReportService(reportRepo db.ReportRepository, economyRepo db.EconomyRepository, classifier Classifier, conf *config.Config) ReportService {
	return &reportService{
		Config:      conf,
		reportRepo:  reportRepo,
		economyRepo: economyRepo,
		classifier:  classifier,
	}
}

// CreateReport builds the report, lets the classifier fill in the hazard type
// when the submitter left it blank, and hands it to the engine which inserts
// the row and credits the reward in one transaction. Classifier failures never
// block a submission; the report just lands as "other".
func (s *reportService) CreateReport(user *models.User, req *models.CreateReportRequest, imageURL, thumbnailURL string) (*models.HazardReport, error) {
	if user == nil {
		return nil, errs.ErrNotAuthorized
	}

	hazardType := req.HazardType
	if hazardType == "" && imageURL != "" && s.classifier != nil {
		label, confidence, err := s.classifier.ClassifyImage(context.Background(), imageURL)
		if err != nil {
			logrus.Warnf("classifier failed for report by user %d: %v", user.ID, err)
			label = models.HazardOther
		} else {
			logrus.Infof("classifier suggested %s (%.2f)", label, confidence)
		}
		hazardType = label
	}
	if !models.ValidHazardType(hazardType) {
		hazardType = models.HazardOther
	}

	report := &models.HazardReport{
		ID:           uuid.New(),
		HazardType:   hazardType,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		Status:       models.StatusActive,
		ImageURL:     imageURL,
		ThumbnailURL: thumbnailURL,
		TokenReward:  models.DefaultTokenReward,
		UserID:       user.ID,
	}

	if err := s.economyRepo.CreateReportWithReward(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetReport(reportID uuid.UUID) (*models.HazardReport, error) {
	return s.reportRepo.GetReportByID(reportID)
}

func (s *reportService) ListReports(page int) ([]models.HazardReport, error) {
	if page < 1 {
		page = 1
	}
	return s.reportRepo.GetAllReports(page)
}

func (s *reportService) ListReportsByStatus(status string, page int) ([]models.HazardReport, error) {
	if page < 1 {
		page = 1
	}
	return s.reportRepo.GetReportsByStatus(status, page)
}

func (s *reportService) ListReportsByType(hazardType string, page int) ([]models.HazardReport, error) {
	if page < 1 {
		page = 1
	}
	return s.reportRepo.GetReportsByType(hazardType, page)
}

func (s *reportService) ListUserReports(userID uint) ([]models.HazardReport, error) {
	return s.reportRepo.GetReportsByUser(userID)
}

func (s *reportService) ListComments(reportID uuid.UUID) ([]models.Comment, error) {
	return s.reportRepo.GetCommentsByReport(reportID)
}

// UpdateReport lets the reporter (or an admin) fix the descriptive fields.
// Status, counters and the reward amount are not reachable from here.
func (s *reportService) UpdateReport(actor *models.User, reportID uuid.UUID, req *models.CreateReportRequest) (*models.HazardReport, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if !CanActOn(actor, ActionEditReport, report.UserID) {
		return nil, errs.ErrNotAuthorized
	}

	if req.HazardType != "" {
		if !models.ValidHazardType(req.HazardType) {
			return nil, errs.ErrBadRequest
		}
		report.HazardType = req.HazardType
	}
	if req.Description != "" {
		report.Description = req.Description
	}
	if req.Address != "" {
		report.Address = req.Address
	}
	if req.Latitude != 0 {
		report.Latitude = req.Latitude
	}
	if req.Longitude != 0 {
		report.Longitude = req.Longitude
	}

	if err := s.reportRepo.UpdateReportDetails(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) DeleteReport(actor *models.User, reportID uuid.UUID) error {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return err
	}
	if !CanActOn(actor, ActionDeleteReport, report.UserID) {
		return errs.ErrNotAuthorized
	}
	return s.reportRepo.DeleteReport(reportID)
}

// GetVoteState reports whether the user has voted on the report and the
// current counter, without touching either.
func (s *reportService) GetVoteState(userID uint, reportID uuid.UUID) (*models.VoteStateResponse, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	voted, err := s.reportRepo.HasVoted(userID, reportID)
	if err != nil {
		return nil, err
	}
	return &models.VoteStateResponse{ReportID: reportID, Voted: voted, VoteCount: report.VoteCount}, nil
}

func (s *reportService) BookmarkReport(user *models.User, reportID uuid.UUID) error {
	if user == nil {
		return errs.ErrNotAuthorized
	}
	if _, err := s.reportRepo.GetReportByID(reportID); err != nil {
		return err
	}
	bookmarked, err := s.reportRepo.IsBookmarked(user.ID, reportID)
	if err != nil {
		return err
	}
	if bookmarked {
		return nil
	}
	return s.reportRepo.SaveBookmark(&models.Bookmark{UserID: user.ID, ReportID: reportID})
}

func (s *reportService) ListBookmarks(userID uint) ([]models.HazardReport, error) {
	return s.reportRepo.GetBookmarkedReports(userID)
}

func (s *reportService) StatusCounts() ([]models.ReportStatusCount, error) {
	return s.reportRepo.CountReportsByStatus()
}

func (s *reportService) TypeCounts() ([]models.ReportTypeCount, error) {
	return s.reportRepo.CountReportsByType()
}

func (s *reportService) TotalReports() (int64, error) {
	return s.reportRepo.GetTotalReportCount()
}
