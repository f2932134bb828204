package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

type RedemptionRepository interface {
	GetRedemptionByID(redemptionID uuid.UUID) (*models.Redemption, error)
	GetRedemptionsByUser(userID uint) ([]models.Redemption, error)
	GetPendingRedemptions() ([]models.Redemption, error)
	SumOutstandingTokens() (int, error)
}

type redemptionRepo struct {
	DB *gorm.DB
}

func NewRedemptionRepo(db *GormDB) RedemptionRepository {
	return &redemptionRepo{db.DB}
}

func (r *redemptionRepo) GetRedemptionByID(redemptionID uuid.UUID) (*models.Redemption, error) {
	var redemption models.Redemption
	err := r.DB.Preload("Item").First(&redemption, "id = ?", redemptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &redemption, nil
}

func (r *redemptionRepo) GetRedemptionsByUser(userID uint) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.DB.Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&redemptions).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list redemptions")
	}
	return redemptions, nil
}

// GetPendingRedemptions is the admin fulfillment queue, oldest first.
func (r *redemptionRepo) GetPendingRedemptions() ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.DB.Preload("Item").
		Where("status = ?", models.RedemptionPending).
		Order("created_at ASC").
		Find(&redemptions).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list pending redemptions")
	}
	return redemptions, nil
}

// SumOutstandingTokens totals the token balances across all users, for the
// admin dashboard.
func (r *redemptionRepo) SumOutstandingTokens() (int, error) {
	var total int
	err := r.DB.Model(&models.User{}).
		Select("COALESCE(SUM(token_balance), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
