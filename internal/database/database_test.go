package database

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanallinone/radio-host-api/internal/models"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{
			name:   "in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "file database",
			dbPath: filepath.Join(t.TempDir(), "test.db"),
		},
		{
			name:   "creates missing parent directory",
			dbPath: filepath.Join(t.TempDir(), "nested", "dir", "test.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Initialize(tt.dbPath, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, db)
			assert.NoError(t, db.HealthCheck())
			assert.NoError(t, db.Close())
		})
	}
}

func TestInitializeWithMigrations(t *testing.T) {
	viper.Reset()
	viper.Set("database.path", filepath.Join(t.TempDir(), "radio.db"))

	db, err := InitializeWithMigrations()
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.Migrator().HasTable(&models.Announcement{}))
}

func TestInitializeWithMigrations_MissingPath(t *testing.T) {
	viper.Reset()

	_, err := InitializeWithMigrations()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is not configured")
}

func TestHealthCheck(t *testing.T) {
	db, err := Initialize(":memory:", false)
	require.NoError(t, err)

	assert.NoError(t, db.HealthCheck())

	require.NoError(t, db.Close())
	assert.Error(t, db.HealthCheck())
}

func TestAutoMigrate(t *testing.T) {
	db, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate(&models.Announcement{}))
	assert.True(t, db.Migrator().HasTable("announcements"))
}

func TestHealthCheck_NilDB(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}
