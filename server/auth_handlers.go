package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
	"github.com/techagentng/hazardx/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "Signup successful", http.StatusCreated, created.Response(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		accessToken := getTokenFromHeader(c)
		if err := s.AuthService.LogoutUser(accessToken, user.Email); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		response.JSON(c, "", http.StatusOK, user.Response(), nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var details models.EditProfileRequest
		if err := decode(c, &details); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.AuthService.EditUserProfile(user.ID, &details); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, nil, nil)
	}
}

// handleUploadProfilePhoto runs the upload through the same resize-and-store
// pipeline as report photos and saves the thumbnail on the profile.
func (s *Server) handleUploadProfilePhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		fileHeader, err := c.FormFile("image")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("image file is required", http.StatusBadRequest))
			return
		}
		_, thumbnailURL, err := s.MediaService.ProcessImage(fileHeader, user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		user.ThumbNailURL = thumbnailURL
		if err := s.AuthRepository.UpdateUser(user); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "profile photo updated", http.StatusOK, gin.H{"thumbnail_url": thumbnailURL}, nil)
	}
}

// handleGetPublicProfile resolves a username (or email) to the public profile
// fields.
func (s *Server) handleGetPublicProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.AuthRepository.FindUserByUsername(c.Param("username"))
		if err != nil {
			response.JSON(c, "", http.StatusNotFound, nil, errs.New("user not found", http.StatusNotFound))
			return
		}
		response.JSON(c, "", http.StatusOK, user.Response(), nil)
	}
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.AuthService.SendEmailForPasswordReset(&request); err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		// Same message either way so the endpoint does not reveal registration.
		response.JSON(c, "if that address is registered, a reset link has been sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.AuthService.ResetPassword(&request, token); err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "password reset successful", http.StatusOK, nil, nil)
	}
}

// decode binds the JSON body and normalizes gin's binding error
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errs.New(err.Error(), http.StatusBadRequest)
	}
	return nil
}
