package main

import (
	"context"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/db"
	"github.com/techagentng/hazardx/mailingservices"
	"github.com/techagentng/hazardx/server"
	"github.com/techagentng/hazardx/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	mailgunClient := mailingservices.Mailgun{}
	mailgunClient.Init()

	messagingClient := initFirebaseMessaging(conf)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	economyRepo := db.NewEconomyRepo(gormDB)
	storeRepo := db.NewStoreRepo(gormDB)
	redemptionRepo := db.NewRedemptionRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	notificationService := services.NewNotificationService(notificationRepo, authRepo, messagingClient, &mailgunClient)
	authService := services.NewAuthService(authRepo, &mailgunClient, conf)
	classifier := services.NewClassifier(conf)
	reportService := services.NewReportService(reportRepo, economyRepo, classifier, conf)
	economyService := services.NewEconomyService(economyRepo, notificationService, conf)
	storeService := services.NewStoreService(storeRepo, redemptionRepo, conf)
	mediaService := services.NewMediaService(conf)

	s := &server.Server{
		Config:              conf,
		Mail:                &mailgunClient,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ReportService:       reportService,
		EconomyService:      economyService,
		StoreService:        storeService,
		MediaService:        mediaService,
		NotificationService: notificationService,
		Feed:                server.NewHub(),
	}
	s.Start()
}

// initFirebaseMessaging returns nil when push credentials are absent; the
// notification service treats a nil client as push disabled.
func initFirebaseMessaging(conf *config.Config) *messaging.Client {
	if conf.GoogleApplicationCredentials == "" {
		logrus.Warn("firebase not configured, push notifications disabled")
		return nil
	}
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(conf.GoogleApplicationCredentials))
	if err != nil {
		logrus.Errorf("firebase init failed: %v", err)
		return nil
	}
	client, err := app.Messaging(context.Background())
	if err != nil {
		logrus.Errorf("firebase messaging init failed: %v", err)
		return nil
	}
	return client
}
