package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 5})
	limitPasswordReset := limitRateForPasswordReset(store)
	reportStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 10})
	limitReports := limitRateForReportSubmission(reportStore)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.POST("/password/forgot", limitPasswordReset, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())

	apirouter.GET("/reports", s.handleGetAllReports())
	apirouter.GET("/reports/:reportID", s.handleGetReport())
	apirouter.GET("/reports/:reportID/comments", s.handleGetComments())
	apirouter.GET("/reports/status/:status", s.handleGetReportsByStatus())
	apirouter.GET("/reports/type/:hazardType", s.handleGetReportsByType())
	apirouter.GET("/reports/counts/status", s.handleStatusCounts())
	apirouter.GET("/reports/counts/type", s.handleTypeCounts())
	apirouter.GET("/reports/count", s.handleTotalReportCount())
	apirouter.GET("/store/items", s.handleListStoreItems())
	apirouter.GET("/users/:username", s.handleGetPublicProfile())
	apirouter.GET("/feed/live", s.handleReportFeed())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me", s.handleEditUserProfile())
	authorized.PUT("/me/photo", s.handleUploadProfilePhoto())
	authorized.GET("/me/balance", s.handleGetBalance())
	authorized.GET("/me/reports", s.handleGetMyReports())
	authorized.GET("/me/bookmarks", s.handleGetBookmarks())
	authorized.GET("/me/redemptions", s.handleGetMyRedemptions())
	authorized.GET("/me/notifications", s.handleGetNotifications())
	authorized.PUT("/me/notifications/:notificationID/seen", s.handleMarkNotificationSeen())
	authorized.POST("/me/devices", s.handleRegisterDevice())

	authorized.POST("/reports", limitReports, s.handleCreateReport())
	authorized.PUT("/reports/:reportID", s.handleUpdateReport())
	authorized.DELETE("/reports/:reportID", s.handleDeleteReport())
	authorized.PUT("/reports/:reportID/vote", s.handleToggleVote())
	authorized.GET("/reports/:reportID/vote", s.handleGetVoteState())
	authorized.POST("/reports/:reportID/comments", s.handleAddComment())
	authorized.DELETE("/comments/:commentID", s.handleDeleteComment())
	authorized.GET("/reports/:reportID/bookmark", s.handleBookmarkReport())

	authorized.POST("/store/redeem", s.handleRedeemItem())

	admin := authorized.Group("/admin")
	admin.Use(s.AdminOnly())
	admin.PUT("/reports/:reportID/status", s.handleTransitionHazardStatus())
	admin.POST("/store/items", s.handleCreateStoreItem())
	admin.PUT("/store/items/:itemID", s.handleUpdateStoreItem())
	admin.DELETE("/store/items/:itemID", s.handleDeleteStoreItem())
	admin.GET("/store/items", s.handleListAllStoreItems())
	admin.GET("/redemptions/pending", s.handlePendingRedemptions())
	admin.PUT("/redemptions/:redemptionID", s.handleTransitionRedemption())

	authorized.GET("/redemptions/:redemptionID", s.handleGetRedemption())
	admin.GET("/tokens/outstanding", s.handleOutstandingTokens())
}
