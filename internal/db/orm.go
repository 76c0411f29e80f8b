package db

import (
	"fmt"
	"log"

	models "bantay-usok/lungsod/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}

// AutoMigrate creates/updates the emission-side tables. The belching-side
// tables (records, violations, fees, record_history, drivers) are managed
// by SQL migrations outside this service.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserRoleMapping{},
		&models.Vehicle{},
		&models.VehicleDriverHistory{},
		&models.Test{},
		&models.TestSchedule{},
	)
}
