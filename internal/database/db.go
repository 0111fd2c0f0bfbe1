package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobpilot/internal/models"
)

func Connect(dsn string, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Info("database connection established")

	// Migration: creates/updates the tables in Postgres automatically
	if err := db.AutoMigrate(&models.User{}, &models.Application{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	return db
}
