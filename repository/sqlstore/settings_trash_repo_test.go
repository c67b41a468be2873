package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alle/domain"
)

func TestSettingsCreatedWithDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestDB(t))

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(domain.DefaultColumnMinWidth), s.ColumnMinWidth)
	assert.Equal(t, int32(domain.DefaultDoubleArrowDays), s.DoubleArrowDays)
	assert.Equal(t, domain.DefaultAutoColumnCounts, s.AutoColumnCounts)
	assert.True(t, s.DrawerIsOpen)
	assert.Equal(t, domain.ThemeLight, s.Theme)

	again, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
}

func TestSettingsUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(newTestDB(t))

	before, err := repo.Get(ctx)
	require.NoError(t, err)

	after, err := repo.Update(ctx, domain.SettingsPatch{
		Theme:        domain.Set(domain.ThemeDark),
		DrawerIsOpen: domain.Set(false),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, after.Theme)
	assert.False(t, after.DrawerIsOpen)
	assert.Equal(t, before.ColumnMinWidth, after.ColumnMinWidth)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	_, err = repo.Update(ctx, domain.SettingsPatch{DrawerHeight: domain.Clear[int32]()})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	reloaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, reloaded.Theme)
	assert.Equal(t, int32(domain.DefaultDrawerHeight), reloaded.DrawerHeight)
}

func TestTrashSnapshotsAndPurge(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	repo := NewTrashRepository(newTestDB(t), WithClock(clock.Now))

	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	old, err := repo.Create(ctx, domain.NewTrashItem{
		TaskID: "12", TaskText: "call mom", TaskDate: day, TaskType: domain.TrashCalendar,
	})
	require.NoError(t, err)
	recent, err := repo.Create(ctx, domain.NewTrashItem{
		TaskID: "40", TaskText: "read", TaskDate: day, TaskType: domain.TrashSomeday, SomedayListID: ptr(int32(3)),
	})
	require.NoError(t, err)

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, recent.ID, items[0].ID)
	assert.Equal(t, int32(3), *items[0].SomedayListID)
	assert.True(t, items[1].TaskDate.Equal(day))

	_, err = repo.Create(ctx, domain.NewTrashItem{TaskID: "1", TaskType: "weekly"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	n, err := repo.PurgeOlderThan(ctx, recent.DeletedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, old.ID, items[0].ID)

	n, err = repo.Delete(ctx, recent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
