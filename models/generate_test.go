package models

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        filepath.Join(t.TempDir(), "models.db"),
	}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestMigrateSeedsSettingsOnce(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var rows []SiteSettings
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Portfolio", rows[0].DisplayName)
	assert.NotNil(t, rows[0].Socials)
}

func TestColumnMismatchReport(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_cover text").Error)

	var out bytes.Buffer
	total, err := ColumnMismatchReport(db, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	assert.Contains(t, out.String(), "--- Table: projects ---")
	assert.Contains(t, out.String(), "  - legacy_cover")
	assert.Contains(t, out.String(), "Total mismatched columns across all tables: 1")
}

func TestColumnMismatchReportBeforeMigrate(t *testing.T) {
	db := openTestDB(t)

	var out bytes.Buffer
	total, err := ColumnMismatchReport(db, &out)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Contains(t, out.String(), "Table does not exist yet")
}
