package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

type StoreRepository interface {
	CreateItem(item *models.StoreItem) error
	GetItemByID(itemID uuid.UUID) (*models.StoreItem, error)
	GetAvailableItems() ([]models.StoreItem, error)
	GetAllItems() ([]models.StoreItem, error)
	UpdateItem(item *models.StoreItem) error
	DeleteItem(itemID uuid.UUID) error
}

type storeRepo struct {
	DB *gorm.DB
}

func NewStoreRepo(db *GormDB) StoreRepository {
	return &storeRepo{db.DB}
}

func (r *storeRepo) CreateItem(item *models.StoreItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.DB.Create(item).Error
}

func (r *storeRepo) GetItemByID(itemID uuid.UUID) (*models.StoreItem, error) {
	var item models.StoreItem
	if err := r.DB.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *storeRepo) GetAvailableItems() ([]models.StoreItem, error) {
	var items []models.StoreItem
	err := r.DB.Where("available = ?", true).Order("token_cost ASC").Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list store items")
	}
	return items, nil
}

func (r *storeRepo) GetAllItems() ([]models.StoreItem, error) {
	var items []models.StoreItem
	err := r.DB.Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list store items")
	}
	return items, nil
}

func (r *storeRepo) UpdateItem(item *models.StoreItem) error {
	res := r.DB.Model(&models.StoreItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"token_cost":  item.TokenCost,
			"available":   item.Available,
			"image_url":   item.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *storeRepo) DeleteItem(itemID uuid.UUID) error {
	res := r.DB.Delete(&models.StoreItem{}, "id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
