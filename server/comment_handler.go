package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
	"github.com/techagentng/hazardx/server/response"
)

func (s *Server) handleAddComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var req models.CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		comment, err := s.EconomyService.AddComment(user, reportID, req.Body)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "comment added", http.StatusCreated, comment, nil)
	}
}

func (s *Server) handleDeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid comment id", http.StatusBadRequest))
			return
		}

		if err := s.EconomyService.DeleteComment(user, uint(commentID)); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "comment deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}
		comments, err := s.ReportService.ListComments(reportID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, comments, nil)
	}
}
