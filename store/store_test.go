package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/cppla/blogstore/config"
	"github.com/cppla/blogstore/models"
)

// newMockDB returns a gorm handle speaking the MySQL dialect to go-sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), config.GormConfig("silent", nil))
	require.NoError(t, err)
	return db, mock
}

// newSQLiteDB returns a migrated private in-memory SQLite database.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.AppConfig{
		DBDriver:    config.DriverSQLite,
		DatabaseURI: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel:    "silent",
	}
	db, err := config.OpenDatabase(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, &models.Author{}, &models.Post{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }
