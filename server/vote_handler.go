package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/server/response"
)

// handleToggleVote flips the caller's vote on a report. One row per
// (report, user); the counter moves with the row inside the engine.
func (s *Server) handleToggleVote() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		state, err := s.EconomyService.ToggleVote(user, reportID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		message := "vote removed"
		if state.Voted {
			message = "vote recorded"
		}
		response.JSON(c, message, http.StatusOK, state, nil)
	}
}

func (s *Server) handleGetVoteState() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}
		state, err := s.ReportService.GetVoteState(user.ID, reportID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, state, nil)
	}
}
