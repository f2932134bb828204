package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a user of the application. TokenBalance is the user's ledger
// balance; it is mutated only through the token economy engine (report reward
// credit, redemption debit), never by profile edits.
type User struct {
	Model
	Fullname       string `json:"fullname" binding:"required,min=2"`
	Username       string `json:"username" binding:"required,min=2"`
	Email          string `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string `json:"-"`
	ThumbNailURL   string `json:"thumbnail_url,omitempty"`
	TokenBalance   int    `json:"token_balance" gorm:"not null;default:0"`
	IsAdmin        bool   `json:"is_admin" gorm:"default:false"`
	IsEmailActive  bool   `json:"-"`
	IsSocial       bool   `json:"-"`
	AccessToken    string `json:"-"`
	ResetToken     string `json:"-"`
}

// CreateSocialUserParams represents the parameters required to create a new social user.
type CreateSocialUserParams struct {
	Email    string `json:"email"`
	IsSocial bool   `json:"is_social"`
	Active   bool   `json:"active"`
	Name     string `json:"name"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Fullname     string `json:"fullname"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	TokenBalance int    `json:"token_balance"`
	IsAdmin      bool   `json:"is_admin"`
}

type EditProfileRequest struct {
	Fullname     string `json:"fullname"`
	Username     string `json:"username"`
	ThumbNailURL string `json:"thumbnail_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type GoogleAuthResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	err := passwordValidator.Validate(password)
	return err
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Fullname:     u.Fullname,
		Username:     u.Username,
		Email:        u.Email,
		TokenBalance: u.TokenBalance,
		IsAdmin:      u.IsAdmin,
	}
}
