package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/db"
	apiError "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/mailingservices"
	"github.com/techagentng/hazardx/models"
	"github.com/techagentng/hazardx/services/jwt"
)

// AuthService interface
type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GoogleLoginUser(authResponse *models.GoogleAuthResponse) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.User, error)
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
	LogoutUser(accessToken, email string) error
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     *mailingservices.Mailgun
}

// NewAuthService instantiates an authService
func NewAuthService(authRepo db.AuthRepository, mail *mailingservices.Mailgun, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.Email == "" {
		return nil, errors.New("email is empty")
	}

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		return nil, apiError.New(err.Error(), http.StatusConflict)
	}
	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Errorf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""
	user.IsEmailActive = true

	created, err := s.authRepo.CreateUser(user)
	if err != nil {
		logrus.Errorf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

// LoginUser logs in a user and returns the login response
func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		logrus.Errorf("error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	return s.loginResponse(foundUser)
}

// GoogleLoginUser logs in (or first creates) a user from a verified Google profile
func (s *authService) GoogleLoginUser(authResponse *models.GoogleAuthResponse) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(authResponse.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Errorf("error finding google user by email: %v", err)
			return nil, apiError.New("unable to find user", http.StatusInternalServerError)
		}
		foundUser, err = s.authRepo.CreateGoogleUser(&models.CreateSocialUserParams{
			Email:    authResponse.Email,
			IsSocial: true,
			Active:   authResponse.VerifiedEmail,
			Name:     authResponse.Name,
		})
		if err != nil {
			logrus.Errorf("error creating google user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}
	return s.loginResponse(foundUser)
}

func (s *authService) loginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	accessToken, err := jwt.GenerateToken(user.Email, s.Config.JWTSecret, user.IsAdmin, user.ID)
	if err != nil {
		logrus.Errorf("error generating token for user %s: %v", user.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: user.Response(),
		AccessToken:  accessToken,
	}, nil
}

func (s *authService) GetUserProfile(userID uint) (*models.User, error) {
	return s.authRepo.FindUserByID(userID)
}

func (s *authService) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	if err := models.ValidateWhiteSpaces(details); err != nil {
		return err
	}
	return s.authRepo.EditUserProfile(userID, details)
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	foundUser, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		// Do not reveal whether the address is registered.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apiError.ErrInternalServerError
	}

	token, err := generateResetToken()
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.SetResetToken(foundUser.Email, token); err != nil {
		logrus.Errorf("could not store reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", s.Config.BaseUrl, token)
	if s.mail != nil {
		if err := s.mail.SendResetPasswordMail(foundUser.Email, resetURL); err != nil {
			logrus.Errorf("could not send reset mail to %s: %v", foundUser.Email, err)
			return apiError.ErrInternalServerError
		}
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	foundUser, err := s.authRepo.FindUserByResetToken(token)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.UpdatePassword(string(hashedPassword), foundUser.Email); err != nil {
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) LogoutUser(accessToken, email string) error {
	return s.authRepo.AddToBlackList(&models.Blacklist{Token: accessToken, Email: email})
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
