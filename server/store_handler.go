package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/techagentng/hazardx/errors"
	"github.com/techagentng/hazardx/models"
	"github.com/techagentng/hazardx/server/response"
)

func (s *Server) handleListStoreItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.StoreService.ListAvailableItems()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, items, nil)
	}
}

func (s *Server) handleListAllStoreItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.StoreService.ListAllItems(currentUser(c))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, items, nil)
	}
}

func (s *Server) handleCreateStoreItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.StoreItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		item, err := s.StoreService.CreateItem(currentUser(c), &req)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "item created", http.StatusCreated, item, nil)
	}
}

func (s *Server) handleUpdateStoreItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := uuid.Parse(c.Param("itemID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid item id", http.StatusBadRequest))
			return
		}
		var req models.StoreItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		item, err := s.StoreService.UpdateItem(currentUser(c), itemID, &req)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "item updated", http.StatusOK, item, nil)
	}
}

func (s *Server) handleDeleteStoreItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := uuid.Parse(c.Param("itemID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid item id", http.StatusBadRequest))
			return
		}
		if err := s.StoreService.DeleteItem(currentUser(c), itemID); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "item deleted", http.StatusOK, nil, nil)
	}
}
