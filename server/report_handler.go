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

// handleCreateReport accepts a multipart form so the hazard photo rides along
// with the report fields. The reporter's reward is credited by the engine in
// the same transaction that inserts the report.
func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid latitude", http.StatusBadRequest))
			return
		}
		lng, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid longitude", http.StatusBadRequest))
			return
		}

		req := &models.CreateReportRequest{
			HazardType:  c.PostForm("hazard_type"),
			Description: c.PostForm("description"),
			Latitude:    lat,
			Longitude:   lng,
			Address:     c.PostForm("address"),
		}
		if req.HazardType != "" && !models.ValidHazardType(req.HazardType) {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unknown hazard type", http.StatusBadRequest))
			return
		}

		var imageURL, thumbnailURL string
		if fileHeader, err := c.FormFile("image"); err == nil {
			imageURL, thumbnailURL, err = s.MediaService.ProcessImage(fileHeader, user.ID)
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
				return
			}
		}

		report, err := s.ReportService.CreateReport(user, req, imageURL, thumbnailURL)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		if s.Feed != nil {
			s.Feed.BroadcastReport(report)
		}
		response.JSON(c, "report created", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}
		report, err := s.ReportService.GetReport(reportID)
		if err != nil {
			response.JSON(c, "", http.StatusNotFound, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, report, nil)
	}
}

func (s *Server) handleGetAllReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := s.ReportService.ListReports(pageFromQuery(c))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleGetReportsByStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Param("status")
		if status != models.StatusActive && status != models.StatusInvestigating && status != models.StatusResolved {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unknown status", http.StatusBadRequest))
			return
		}
		reports, err := s.ReportService.ListReportsByStatus(status, pageFromQuery(c))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleGetReportsByType() gin.HandlerFunc {
	return func(c *gin.Context) {
		hazardType := c.Param("hazardType")
		if !models.ValidHazardType(hazardType) {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unknown hazard type", http.StatusBadRequest))
			return
		}
		reports, err := s.ReportService.ListReportsByType(hazardType, pageFromQuery(c))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleGetMyReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		reports, err := s.ReportService.ListUserReports(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleUpdateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var req models.CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		report, err := s.ReportService.UpdateReport(user, reportID, &req)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "report updated", http.StatusOK, report, nil)
	}
}

func (s *Server) handleDeleteReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}
		if err := s.ReportService.DeleteReport(user, reportID); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "report deleted", http.StatusOK, nil, nil)
	}
}

// handleTransitionHazardStatus moves a report through its lifecycle. Routed
// under /admin; the service re-checks the actor on top of that.
func (s *Server) handleTransitionHazardStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var req models.TransitionStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		report, err := s.EconomyService.TransitionHazardStatus(user, reportID, req.Status)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "status updated", http.StatusOK, report, nil)
	}
}

func (s *Server) handleBookmarkReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}
		if err := s.ReportService.BookmarkReport(user, reportID); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "report bookmarked", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetBookmarks() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		reports, err := s.ReportService.ListBookmarks(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleStatusCounts() gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := s.ReportService.StatusCounts()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, counts, nil)
	}
}

func (s *Server) handleTypeCounts() gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := s.ReportService.TypeCounts()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, counts, nil)
	}
}

func (s *Server) handleTotalReportCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := s.ReportService.TotalReports()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"total": total}, nil)
	}
}

func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
