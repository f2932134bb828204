package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
	"github.com/techagentng/hazardx/server/response"
)

// handleRedeemItem opens a redemption. The engine locks the caller's balance
// row, checks affordability and deducts the cost in one transaction, so two
// concurrent redemptions cannot spend the same tokens.
func (s *Server) handleRedeemItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		var req models.RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		redemption, err := s.EconomyService.RedeemItem(user, req.ItemID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "redemption opened", http.StatusCreated, redemption, nil)
	}
}

func (s *Server) handleGetMyRedemptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		redemptions, err := s.StoreService.ListUserRedemptions(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, redemptions, nil)
	}
}

func (s *Server) handleGetRedemption() gin.HandlerFunc {
	return func(c *gin.Context) {
		redemptionID, err := uuid.Parse(c.Param("redemptionID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid redemption id", http.StatusBadRequest))
			return
		}
		redemption, err := s.StoreService.GetRedemption(currentUser(c), redemptionID)
		if err != nil {
			response.JSON(c, "", http.StatusNotFound, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, redemption, nil)
	}
}

func (s *Server) handlePendingRedemptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		redemptions, err := s.StoreService.ListPendingRedemptions(currentUser(c))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, redemptions, nil)
	}
}

// handleTransitionRedemption fulfils or cancels a pending redemption.
// Cancellation does not return the deducted tokens.
func (s *Server) handleTransitionRedemption() gin.HandlerFunc {
	return func(c *gin.Context) {
		redemptionID, err := uuid.Parse(c.Param("redemptionID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid redemption id", http.StatusBadRequest))
			return
		}
		var req models.TransitionRedemptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		redemption, err := s.EconomyService.TransitionRedemption(currentUser(c), redemptionID, req.Status)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "redemption updated", http.StatusOK, redemption, nil)
	}
}

func (s *Server) handleGetBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		balance, err := s.EconomyService.GetBalance(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"token_balance": balance}, nil)
	}
}

func (s *Server) handleOutstandingTokens() gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := s.StoreService.TotalOutstandingTokens(currentUser(c))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"outstanding_tokens": total}, nil)
	}
}
