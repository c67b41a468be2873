package repository

import (
	"context"

	"github.com/fastygo/alle/domain"
)

type TaskLinkRepository interface {
	Add(ctx context.Context, taskID int32, url string, title *string) (*domain.TaskLink, error)
	FindByTask(ctx context.Context, taskID int32) ([]domain.TaskLink, error)
	Update(ctx context.Context, id int32, patch domain.TaskLinkPatch) (*domain.TaskLink, error)
	Delete(ctx context.Context, id int32) (int64, error)
	DeleteByTask(ctx context.Context, taskID int32) (int64, error)
}
