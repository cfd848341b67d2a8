package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
)

func newTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(db))
	database.C = db
}

func newTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := LoadOrCreateAccount(name, name, false)
	require.NoError(t, err)
	return account
}

func newTestGroup(t *testing.T, slug string) models.Group {
	t.Helper()

	group, err := NewGroup(slug, slug, "")
	require.NoError(t, err)
	return group
}
