// Package apptest builds a fully wired container on a throwaway SQLite file
// and a local blob store for package tests.
package apptest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fastygo/alle/internal/app"
	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/infrastructure/database"
	"github.com/fastygo/alle/internal/infrastructure/migrations"
	"github.com/fastygo/alle/internal/infrastructure/storage"
)

// Env is a migrated database plus blob store and the container over them.
type Env struct {
	Container *app.Container
	DB        *database.DB
	Blobs     *storage.BoltStore
}

// New migrates a fresh database under t.TempDir and wires the container.
func New(t *testing.T) *Env {
	t.Helper()
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	cfg := &config.Config{
		Database:   config.DatabaseConfig{URL: "sqlite://" + filepath.Join(dir, "alle.db")},
		Migrations: config.MigrationsConfig{Enabled: true},
	}
	require.NoError(t, migrations.Run(cfg, logger))

	db, err := database.Open(context.Background(), cfg.Database, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	blobs, err := storage.OpenBoltStore(filepath.Join(dir, "blobs.db"), storage.BoltOptions{
		SigningKey: []byte("test-signing-key"),
		BaseURL:    "http://localhost:8000",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = blobs.Close() })

	c := app.New(db.Gorm, blobs, app.Options{}, logger)
	return &Env{Container: c, DB: db, Blobs: blobs}
}
