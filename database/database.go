package database

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"vyaparkendra/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres handle from the environment and runs the
// schema migration when DB_AUTO_MIGRATE is set. The handle is returned to
// the caller; nothing here keeps a package-level copy.
func Connect() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, pass, name, port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("✅ Connected to database")

	autoMigrate, _ := strconv.ParseBool(os.Getenv("DB_AUTO_MIGRATE"))
	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("✅ Auto migration completed")
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.LedgerEntry{},
		&models.Service{},
		&models.ServiceRequest{},
		&models.Loan{},
		&models.NBFCPartner{},
		&models.AuditLog{},
		&models.OnboardingProfile{},
	)
}
