package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/server/response"
)

type registerDeviceRequest struct {
	Token string `json:"token" binding:"required"`
}

func (s *Server) handleRegisterDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		var req registerDeviceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		if err := s.NotificationService.RegisterDevice(user.ID, req.Token); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "device registered", http.StatusCreated, nil, nil)
	}
}

func (s *Server) handleGetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		notifications, err := s.NotificationService.GetUserNotifications(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleMarkNotificationSeen() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		notificationID, err := strconv.ParseUint(c.Param("notificationID"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid notification id", http.StatusBadRequest))
			return
		}
		if err := s.NotificationService.MarkSeen(user.ID, uint(notificationID)); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "notification marked as seen", http.StatusOK, nil, nil)
	}
}
