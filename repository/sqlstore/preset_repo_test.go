package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alle/domain"
)

func TestTagPresets(t *testing.T) {
	ctx := context.Background()
	repo := NewTagPresetRepository(newTestDB(t))

	work, err := repo.Create(ctx, "work")
	require.NoError(t, err)
	assert.Zero(t, work.UsageCount)

	_, err = repo.Create(ctx, "work")
	assert.ErrorIs(t, err, domain.ErrTagPresetExists)

	home, err := repo.Create(ctx, "home")
	require.NoError(t, err)

	bumped, err := repo.IncrementUsage(ctx, work.ID)
	require.NoError(t, err)
	bumped, err = repo.IncrementUsage(ctx, bumped.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), bumped.UsageCount)

	_, err = repo.Rename(ctx, home.ID, "work")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	// renaming to the current name is allowed
	same, err := repo.Rename(ctx, home.ID, "home")
	require.NoError(t, err)
	assert.Equal(t, "home", same.Name)

	renamed, err := repo.Rename(ctx, home.ID, "errands")
	require.NoError(t, err)
	assert.Equal(t, "errands", renamed.Name)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "errands", all[0].Name)

	_, err = repo.IncrementUsage(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrTagPresetNotFound)

	n, err := repo.Delete(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = repo.FindByName(ctx, "work")
	assert.True(t, domain.IsNotFound(err))
}

func TestColorPresetsAppendAndReorder(t *testing.T) {
	ctx := context.Background()
	repo := NewColorPresetRepository(newTestDB(t))

	a, err := repo.Create(ctx, "Red", "#ff0000")
	require.NoError(t, err)
	b, err := repo.Create(ctx, "Green", "#00ff00")
	require.NoError(t, err)
	c, err := repo.Create(ctx, "Blue", "#0000ff")
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2}, []int32{a.Position, b.Position, c.Position})

	ordered, err := repo.Reorder(ctx, []int32{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, []int32{c.ID, a.ID, b.ID}, []int32{ordered[0].ID, ordered[1].ID, ordered[2].ID})
	assert.Equal(t, []int32{0, 1, 2}, []int32{ordered[0].Position, ordered[1].Position, ordered[2].Position})

	found, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, ordered, found)

	// unlisted presets follow the listed ones
	partial, err := repo.Reorder(ctx, []int32{b.ID})
	require.NoError(t, err)
	assert.Equal(t, []int32{b.ID, c.ID, a.ID}, []int32{partial[0].ID, partial[1].ID, partial[2].ID})

	_, err = repo.Reorder(ctx, []int32{a.ID, a.ID})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	_, err = repo.Reorder(ctx, []int32{999})
	assert.ErrorIs(t, err, domain.ErrColorPresetNotFound)

	updated, err := repo.Update(ctx, a.ID, domain.ColorPresetPatch{HexValue: domain.Set("#aa0000")})
	require.NoError(t, err)
	assert.Equal(t, "Red", updated.Name)
	assert.Equal(t, "#aa0000", updated.HexValue)

	_, err = repo.Update(ctx, a.ID, domain.ColorPresetPatch{Name: domain.Clear[string]()})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
