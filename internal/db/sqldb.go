package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitelens/sitelens/internal/models"
)

var db_ *gorm.DB

// Connect establishes the database connection when DATABASE_DSN is set.
// The database is optional; without it the service runs without render
// history.
func Connect() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Printf("DATABASE_DSN not set, render history disabled")
		return
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			Colorful:      false,
		},
	)

	var err error
	db_, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		db_ = nil
		return
	}

	if err := db_.AutoMigrate(&models.RenderRecord{}); err != nil {
		log.Printf("Failed to migrate render history table: %v", err)
	}
}

// GetDB returns the database handle, or nil when no database is configured.
func GetDB() *gorm.DB {
	return db_
}
