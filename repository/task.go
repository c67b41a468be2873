package repository

import (
	"context"

	"github.com/fastygo/alle/domain"
)

// TaskRepository persists unified tasks.
type TaskRepository interface {
	Create(ctx context.Context, task domain.NewTask) (*domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id int32) (*domain.Task, error)
	FindIncomplete(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id int32, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int32) (int64, error)
}
