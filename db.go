package main

import (
	"strings"

	"github.com/luciayin9944/Expense-Tracker-APP/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(dsn string) {
	if dsn == "" {
		log.Fatal().Msg("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres database")
	}
	migrateDB(db)
}

// migrateDB creates the schema. Models are migrated individually so a
// failure on one doesn't block the others.
func migrateDB(db *gorm.DB) {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (users)")
	}
	if err := db.AutoMigrate(&models.Expense{}); err != nil {
		log.Warn().Err(err).Msg("migration warning (expenses)")
	}
}

// isUniqueConstraintError matches both postgres ("duplicate key value
// violates unique constraint") and sqlite ("UNIQUE constraint failed")
// wordings.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
