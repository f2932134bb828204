package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

const reportPageSize = 20

type ReportRepository interface {
	GetReportByID(reportID uuid.UUID) (*models.HazardReport, error)
	GetAllReports(page int) ([]models.HazardReport, error)
	GetReportsByStatus(status string, page int) ([]models.HazardReport, error)
	GetReportsByType(hazardType string, page int) ([]models.HazardReport, error)
	GetReportsByUser(userID uint) ([]models.HazardReport, error)
	GetCommentsByReport(reportID uuid.UUID) ([]models.Comment, error)
	HasVoted(userID uint, reportID uuid.UUID) (bool, error)
	UpdateReportDetails(report *models.HazardReport) error
	DeleteReport(reportID uuid.UUID) error
	SaveBookmark(bookmark *models.Bookmark) error
	IsBookmarked(userID uint, reportID uuid.UUID) (bool, error)
	GetBookmarkedReports(userID uint) ([]models.HazardReport, error)
	CountReportsByStatus() ([]models.ReportStatusCount, error)
	CountReportsByType() ([]models.ReportTypeCount, error)
	GetTotalReportCount() (int64, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) GetReportByID(reportID uuid.UUID) (*models.HazardReport, error) {
	var report models.HazardReport
	if err := r.DB.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetAllReports(page int) ([]models.HazardReport, error) {
	var reports []models.HazardReport
	offset := (page - 1) * reportPageSize
	err := r.DB.Order("created_at DESC").Offset(offset).Limit(reportPageSize).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list reports")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByStatus(status string, page int) ([]models.HazardReport, error) {
	var reports []models.HazardReport
	offset := (page - 1) * reportPageSize
	err := r.DB.Where("status = ?", status).
		Order("created_at DESC").Offset(offset).Limit(reportPageSize).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list reports by status")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByType(hazardType string, page int) ([]models.HazardReport, error) {
	var reports []models.HazardReport
	offset := (page - 1) * reportPageSize
	err := r.DB.Where("hazard_type = ?", hazardType).
		Order("created_at DESC").Offset(offset).Limit(reportPageSize).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list reports by type")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByUser(userID uint) ([]models.HazardReport, error) {
	var reports []models.HazardReport
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list user reports")
	}
	return reports, nil
}

func (r *reportRepo) GetCommentsByReport(reportID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.Where("report_id = ?", reportID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list comments")
	}
	return comments, nil
}

func (r *reportRepo) HasVoted(userID uint, reportID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Vote{}).
		Where("report_id = ? AND user_id = ?", reportID, userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateReportDetails persists the reporter-editable fields. Status, counters
// and the token reward never change through this path.
func (r *reportRepo) UpdateReportDetails(report *models.HazardReport) error {
	return r.DB.Model(&models.HazardReport{}).
		Where("id = ?", report.ID).
		Updates(map[string]interface{}{
			"hazard_type": report.HazardType,
			"description": report.Description,
			"address":     report.Address,
			"latitude":    report.Latitude,
			"longitude":   report.Longitude,
		}).Error
}

func (r *reportRepo) DeleteReport(reportID uuid.UUID) error {
	res := r.DB.Delete(&models.HazardReport{}, "id = ?", reportID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *reportRepo) SaveBookmark(bookmark *models.Bookmark) error {
	var existing models.Bookmark
	err := r.DB.Where("user_id = ? AND report_id = ?", bookmark.UserID, bookmark.ReportID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(bookmark).Error
}

func (r *reportRepo) IsBookmarked(userID uint, reportID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND report_id = ?", userID, reportID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reportRepo) GetBookmarkedReports(userID uint) ([]models.HazardReport, error) {
	var reports []models.HazardReport
	err := r.DB.
		Joins("JOIN bookmarks ON bookmarks.report_id = hazard_reports.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list bookmarked reports")
	}
	return reports, nil
}

func (r *reportRepo) CountReportsByStatus() ([]models.ReportStatusCount, error) {
	var counts []models.ReportStatusCount
	err := r.DB.Model(&models.HazardReport{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *reportRepo) CountReportsByType() ([]models.ReportTypeCount, error) {
	var counts []models.ReportTypeCount
	err := r.DB.Model(&models.HazardReport{}).
		Select("hazard_type, COUNT(*) as count").
		Group("hazard_type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *reportRepo) GetTotalReportCount() (int64, error) {
	var count int64
	err := r.DB.Model(&models.HazardReport{}).Count(&count).Error
	return count, err
}
