package db

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/techagentng/hazardx/models"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	CreateGoogleUser(params *models.CreateSocialUserParams) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByUsername(username string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	UpdatePassword(password string, email string) error
	SetResetToken(email, token string) error
	FindUserByResetToken(token string) (*models.User, error)
	AddToBlackList(blacklist *models.Blacklist) error
	TokenInBlacklist(token string) bool
	SaveDeviceToken(token *models.DeviceToken) error
	DeviceTokensForUser(userID uint) ([]string, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("could not create user: %v", err)
	}
	return user, nil
}

func (a *authRepo) CreateGoogleUser(params *models.CreateSocialUserParams) (*models.User, error) {
	user := &models.User{
		Fullname:      params.Name,
		Username:      params.Email,
		Email:         params.Email,
		IsSocial:      params.IsSocial,
		IsEmailActive: params.Active,
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("could not create user: %v", err)
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm.count error")
	}
	if count > 0 {
		return fmt.Errorf("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ? OR username = ?", username, username).First(user).Error
	if err != nil {
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	user := &models.User{}
	err := a.DB.First(user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

// EditUserProfile updates the non-financial profile fields only. Token balance
// and the admin flag are untouchable from here.
func (a *authRepo) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	updates := map[string]interface{}{}
	if details.Fullname != "" {
		updates["fullname"] = details.Fullname
	}
	if details.Username != "" {
		updates["username"] = details.Username
	}
	if details.ThumbNailURL != "" {
		updates["thumb_nail_url"] = details.ThumbNailURL
	}
	if len(updates) == 0 {
		return nil
	}
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	return a.DB.Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"hashed_password": password, "reset_token": ""}).Error
}

func (a *authRepo) SetResetToken(email, token string) error {
	return a.DB.Model(&models.User{}).Where("email = ?", email).Update("reset_token", token).Error
}

func (a *authRepo) FindUserByResetToken(token string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("reset_token = ?", token).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) TokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func (a *authRepo) SaveDeviceToken(token *models.DeviceToken) error {
	var existing models.DeviceToken
	err := a.DB.Where("user_id = ? AND token = ?", token.UserID, token.Token).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return a.DB.Create(token).Error
}

func (a *authRepo) DeviceTokensForUser(userID uint) ([]string, error) {
	var tokens []string
	err := a.DB.Model(&models.DeviceToken{}).Where("user_id = ?", userID).Pluck("token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
