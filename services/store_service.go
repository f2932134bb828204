package services

import (
	"github.com/google/uuid"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/db"
	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
)

type StoreService interface {
	CreateItem(actor *models.User, req *models.StoreItemRequest) (*models.StoreItem, error)
	UpdateItem(actor *models.User, itemID uuid.UUID, req *models.StoreItemRequest) (*models.StoreItem, error)
	DeleteItem(actor *models.User, itemID uuid.UUID) error
	GetItem(itemID uuid.UUID) (*models.StoreItem, error)
	ListAvailableItems() ([]models.StoreItem, error)
	ListAllItems(actor *models.User) ([]models.StoreItem, error)
	GetRedemption(actor *models.User, redemptionID uuid.UUID) (*models.Redemption, error)
	ListUserRedemptions(userID uint) ([]models.Redemption, error)
	ListPendingRedemptions(actor *models.User) ([]models.Redemption, error)
	TotalOutstandingTokens(actor *models.User) (int, error)
}

type storeService struct {
	Config         *config.Config
	storeRepo      db.StoreRepository
	redemptionRepo db.RedemptionRepository
}

func NewStoreService(storeRepo db.StoreRepository, redemptionRepo db.RedemptionRepository, conf *config.Config) StoreService {
	return &storeService{
		Config:         conf,
		storeRepo:      storeRepo,
		redemptionRepo: redemptionRepo,
	}
}

func (s *storeService) CreateItem(actor *models.User, req *models.StoreItemRequest) (*models.StoreItem, error) {
	if !CanActOn(actor, ActionManageStore, 0) {
		return nil, errs.ErrNotAuthorized
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := &models.StoreItem{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		TokenCost:   req.TokenCost,
		Available:   available,
		ImageURL:    req.ImageURL,
	}
	if err := s.storeRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *storeService) UpdateItem(actor *models.User, itemID uuid.UUID, req *models.StoreItemRequest) (*models.StoreItem, error) {
	if !CanActOn(actor, ActionManageStore, 0) {
		return nil, errs.ErrNotAuthorized
	}
	item, err := s.storeRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	item.Description = req.Description
	item.TokenCost = req.TokenCost
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if err := s.storeRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *storeService) DeleteItem(actor *models.User, itemID uuid.UUID) error {
	if !CanActOn(actor, ActionManageStore, 0) {
		return errs.ErrNotAuthorized
	}
	return s.storeRepo.DeleteItem(itemID)
}

func (s *storeService) GetItem(itemID uuid.UUID) (*models.StoreItem, error) {
	return s.storeRepo.GetItemByID(itemID)
}

func (s *storeService) ListAvailableItems() ([]models.StoreItem, error) {
	return s.storeRepo.GetAvailableItems()
}

// ListAllItems includes unavailable items, so it is admin only.
func (s *storeService) ListAllItems(actor *models.User) ([]models.StoreItem, error) {
	if !CanActOn(actor, ActionManageStore, 0) {
		return nil, errs.ErrNotAuthorized
	}
	return s.storeRepo.GetAllItems()
}

// GetRedemption is visible to the redeemer and to admins; everyone else gets
// ErrNotFound so the id space leaks nothing.
func (s *storeService) GetRedemption(actor *models.User, redemptionID uuid.UUID) (*models.Redemption, error) {
	redemption, err := s.redemptionRepo.GetRedemptionByID(redemptionID)
	if err != nil {
		return nil, err
	}
	if actor == nil || (!actor.IsAdmin && actor.ID != redemption.UserID) {
		return nil, errs.ErrNotFound
	}
	return redemption, nil
}

func (s *storeService) ListUserRedemptions(userID uint) ([]models.Redemption, error) {
	return s.redemptionRepo.GetRedemptionsByUser(userID)
}

func (s *storeService) ListPendingRedemptions(actor *models.User) ([]models.Redemption, error) {
	if !CanActOn(actor, ActionTransitionRedemption, 0) {
		return nil, errs.ErrNotAuthorized
	}
	return s.redemptionRepo.GetPendingRedemptions()
}

func (s *storeService) TotalOutstandingTokens(actor *models.User) (int, error) {
	if !CanActOn(actor, ActionManageStore, 0) {
		return 0, errs.ErrNotAuthorized
	}
	return s.redemptionRepo.SumOutstandingTokens()
}
