package database

import (
	"log"
	"os"

	"rally-gateway/internal/domain/session"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	// The gateway only owns session state; everything else lives upstream.
	if err := DB.AutoMigrate(
		&session.Session{},
		&session.VoteMark{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}
}
