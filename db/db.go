package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/models"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		logrus.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	logrus.Infof("connecting to postgres: host=%s db=%s", c.PostgresHost, c.PostgresDB)
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		logrus.Fatal(err)
	}

	return gormDB
}

// SeedAdmin makes sure at least one administrator exists so redemptions and
// report triage can be exercised on a fresh database.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("HAZARDX_ADMIN_EMAIL")
	password := os.Getenv("HAZARDX_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Fullname:       "Administrator",
		Username:       "admin",
		Email:          email,
		HashedPassword: string(hashed),
		IsAdmin:        true,
		IsEmailActive:  true,
	}
	return db.Create(&admin).Error
}

// SeedStoreItems loads a starter catalog so the rewards store is not empty on
// first boot. Existing items are left alone.
func SeedStoreItems(db *gorm.DB) error {
	items := []models.StoreItem{
		{ID: uuid.New(), Name: "Reflective vest", Description: "High-visibility vest for community volunteers", TokenCost: 50, Available: true},
		{ID: uuid.New(), Name: "Bus pass (1 week)", Description: "Seven day public transport pass", TokenCost: 100, Available: true},
		{ID: uuid.New(), Name: "Tree sapling", Description: "Sapling planted in your name", TokenCost: 20, Available: true},
	}

	for _, item := range items {
		var existing models.StoreItem
		err := db.Where("name = ?", item.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&item).Error; err != nil {
			logrus.Errorf("failed to seed store item %s: %v", item.Name, err)
			return err
		}
	}
	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.HazardReport{},
		&models.Vote{},
		&models.Comment{},
		&models.StoreItem{},
		&models.Redemption{},
		&models.Bookmark{},
		&models.DeviceToken{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedAdmin(db); err != nil {
		return fmt.Errorf("seeding admin error: %v", err)
	}
	if err := SeedStoreItems(db); err != nil {
		return fmt.Errorf("seeding store items error: %v", err)
	}

	return nil
}
