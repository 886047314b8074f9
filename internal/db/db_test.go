package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/models"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")

	db, err := Open(&cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.Entry{}))

	entry := models.Entry{Zone: "example.com", Batch: "update add x"}
	require.NoError(t, db.Create(&entry).Error)
	assert.Len(t, entry.ID, 36)
}

func TestOpen_UnknownEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Engine = "oracle"

	_, err := Open(&cfg)
	require.ErrorIs(t, err, ErrUnknownEngine)
}
