package repository

import (
	"context"

	"github.com/fastygo/alle/domain"
)

type TaskTagRepository interface {
	Add(ctx context.Context, taskID int32, tagName string) (*domain.TaskTag, error)
	FindByTask(ctx context.Context, taskID int32) ([]domain.TaskTag, error)
	AllNames(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id int32) (int64, error)
	DeleteByTask(ctx context.Context, taskID int32) (int64, error)
}

type TagPresetRepository interface {
	Create(ctx context.Context, name string) (*domain.TagPreset, error)
	FindAll(ctx context.Context) ([]domain.TagPreset, error)
	FindByName(ctx context.Context, name string) (*domain.TagPreset, error)
	Rename(ctx context.Context, id int32, name string) (*domain.TagPreset, error)
	IncrementUsage(ctx context.Context, id int32) (*domain.TagPreset, error)
	Delete(ctx context.Context, id int32) (int64, error)
}

type ColorPresetRepository interface {
	Create(ctx context.Context, name, hexValue string) (*domain.ColorPreset, error)
	FindAll(ctx context.Context) ([]domain.ColorPreset, error)
	Update(ctx context.Context, id int32, patch domain.ColorPresetPatch) (*domain.ColorPreset, error)
	// Reorder assigns each id its index in ids as position. Statements are not
	// batched in a transaction.
	Reorder(ctx context.Context, ids []int32) ([]domain.ColorPreset, error)
	Delete(ctx context.Context, id int32) (int64, error)
}
