package services

import (
	"testing"

	"vyaparkendra/database"
	"vyaparkendra/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. The pool is pinned to a
// single connection so concurrent test goroutines serialize the same way
// row-level locking serializes them on postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newMitra(t *testing.T, db *gorm.DB, region string) models.User {
	t.Helper()
	user := models.User{
		ID:        uuid.New().String(),
		Name:      "Mitra " + region,
		Email:     uuid.New().String() + "@example.com",
		Role:      models.RoleMitra,
		Region:    region,
		KycStatus: models.KycPending,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newCatalogService(t *testing.T, db *gorm.DB, name, category string, price int64) models.Service {
	t.Helper()
	svc := models.Service{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   category,
		Price:      decimal.NewFromInt(price),
		Commission: decimal.NewFromInt(price / 5),
	}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
