package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alle/domain"
)

func TestTaskCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newTestDB(t))
	day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, domain.NewTask{
		Title:     "Buy milk",
		Placement: domain.OnDate(day),
		Notes:     ptr("2 litres"),
		Color:     ptr("#ff0000"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Completed)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", found.Title)
	assert.False(t, found.Completed)
	assert.Equal(t, domain.PlacementCalendar, found.Placement.Kind)
	assert.True(t, found.Placement.Date.Equal(day))
	assert.Equal(t, "2 litres", *found.Notes)
	assert.Equal(t, "#ff0000", *found.Color)
	assert.True(t, found.CreatedAt.Equal(created.CreatedAt))
}

func TestTaskCreateRequiresTitle(t *testing.T) {
	_, err := NewTaskRepository(newTestDB(t)).Create(context.Background(), domain.NewTask{})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestTaskUpdateTitleLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newTestDB(t))

	created, err := repo.Create(ctx, domain.NewTask{Title: "Draft", Notes: ptr("keep"), Color: ptr("blue")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.TaskPatch{Title: domain.Set("X")})
	require.NoError(t, err)

	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, created.Completed, updated.Completed)
	assert.Equal(t, created.Placement, updated.Placement)
	assert.Equal(t, "keep", *updated.Notes)
	assert.Equal(t, "blue", *updated.Color)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestTaskUpdateTriState(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newTestDB(t))

	created, err := repo.Create(ctx, domain.NewTask{Title: "Notes", Notes: ptr("n"), Color: ptr("c")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.TaskPatch{
		Notes: domain.Clear[string](),
		Color: domain.Keep[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)
	assert.Equal(t, "c", *updated.Color)

	_, err = repo.Update(ctx, created.ID, domain.TaskPatch{Title: domain.Clear[string]()})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestTaskUpdatePlacement(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	list, err := NewSomedayListRepository(db).Create(ctx, "Later", 0)
	require.NoError(t, err)

	day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, domain.NewTask{Title: "Move me", Placement: domain.OnDate(day)})
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, domain.TaskPatch{ListID: domain.Set(list.ID)})
	assert.ErrorIs(t, err, domain.ErrMixedPlacement)

	moved, err := repo.Update(ctx, created.ID, domain.TaskPatch{
		Date:     domain.Clear[time.Time](),
		ListID:   domain.Set(list.ID),
		Position: domain.Set[int32](3),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementSomeday, moved.Placement.Kind)
	assert.Equal(t, list.ID, moved.Placement.ListID)
	assert.Equal(t, int32(3), *moved.Placement.Position)
}

func TestTaskUpdateMissing(t *testing.T) {
	_, err := NewTaskRepository(newTestDB(t)).Update(context.Background(), 404, domain.TaskPatch{Title: domain.Set("x")})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	tags := NewTaskTagRepository(db)

	created, err := repo.Create(ctx, domain.NewTask{Title: "Gone"})
	require.NoError(t, err)
	_, err = tags.Add(ctx, created.ID, "home")
	require.NoError(t, err)

	n, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByID(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))

	remaining, err := tags.FindByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	n, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTaskFindIncomplete(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newTestDB(t))

	want := map[int32]bool{}
	for i, done := range []bool{false, true, false, true, true, false} {
		task, err := repo.Create(ctx, domain.NewTask{Title: string(rune('a' + i)), Completed: done})
		require.NoError(t, err)
		if !done {
			want[task.ID] = true
		}
	}

	incomplete, err := repo.FindIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, incomplete, len(want))
	for _, task := range incomplete {
		assert.False(t, task.Completed)
		assert.True(t, want[task.ID])
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
