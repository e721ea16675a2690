package db

import (
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/windoze95/paleofinder-api/internal/config"
	"github.com/windoze95/paleofinder-api/internal/logger"
	"github.com/windoze95/paleofinder-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New creates a new database connection.
func New(cfg *config.Config) (*gorm.DB, error) {
	return connectToDatabaseWithRetry(cfg.EnvVars.DatabaseUrl)
}

// connectToDatabaseWithRetry connects to the database and retries if necessary.
func connectToDatabaseWithRetry(databaseURL string) (*gorm.DB, error) {
	logger.Get().Info("connecting to database")
	var database *gorm.DB
	var err error

	// lib/pq is the database/sql driver so constraint errors surface as *pq.Error.
	dialector := postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        databaseURL,
	})

	start := time.Now()
	for {
		database, err = gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			break
		}
		if time.Since(start) > 1*time.Minute {
			return nil, fmt.Errorf("could not connect to database after 1 minute: %w", err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(5 * time.Second)
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.UserAuth{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}
