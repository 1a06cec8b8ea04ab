package config

import (
	"fmt"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver used below
	logrus "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"traveling_help/internal/models"
)

// InitDB opens the development backend database through lib/pq and
// migrates the driver and post tables.
func InitDB(cfg *DevAPIConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        cfg.DSN(),
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Driver{}, &models.Post{}); err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host": cfg.DBHost,
		"db":   cfg.DBName,
	}).Info("database ready")
	return db, nil
}
