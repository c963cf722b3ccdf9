// Package testutil provides an in-memory database for repository and
// service tests.
package testutil

import (
	"fmt"
	"testing"

	"lawpro-be/internal/model"
	"lawpro-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite database with every model
// migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   database.DriverSQLite,
		DSN:      dsn,
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedLawyers inserts directory rows and returns them with ids assigned.
func SeedLawyers(t *testing.T, db *gorm.DB, lawyers ...model.Lawyer) []model.Lawyer {
	t.Helper()
	for i := range lawyers {
		require.NoError(t, db.Create(&lawyers[i]).Error)
	}
	return lawyers
}
