package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/db"
	"github.com/techagentng/hazardx/mailingservices"
	"github.com/techagentng/hazardx/services"
)

// Server owns the HTTP surface and the wired services
type Server struct {
	Config              *config.Config
	Mail                *mailingservices.Mailgun
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	ReportService       services.ReportService
	EconomyService      services.EconomyService
	StoreService        services.StoreService
	MediaService        services.MediaService
	NotificationService services.NotificationService
	Feed                *Hub
}

func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		logrus.Infof("server listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}
}
