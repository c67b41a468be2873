package sqlstore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/infrastructure/database"
	"github.com/fastygo/alle/internal/infrastructure/migrations"
)

// newTestDB returns a gorm handle on a fully migrated SQLite file.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cfg := &config.Config{
		Database:   config.DatabaseConfig{URL: "sqlite://" + filepath.Join(t.TempDir(), "alle.db")},
		Migrations: config.MigrationsConfig{Enabled: true},
	}
	require.NoError(t, migrations.Run(cfg, logger))

	db, err := database.Open(context.Background(), cfg.Database, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.Gorm
}

// stepClock advances by one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func ptr[T any](v T) *T { return &v }
