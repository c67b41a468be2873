package repository

import (
	"context"

	"github.com/fastygo/alle/domain"
)

type SomedayListRepository interface {
	FindAll(ctx context.Context) ([]domain.SomedayList, error)
	Create(ctx context.Context, name string, position int32) (*domain.SomedayList, error)
	Update(ctx context.Context, id int32, patch domain.SomedayListPatch) (*domain.SomedayList, error)
	Delete(ctx context.Context, id int32) (int64, error)
}

// SomedayTaskRepository works on the tasks that sit in a list.
type SomedayTaskRepository interface {
	FindAll(ctx context.Context) ([]domain.SomedayTask, error)
	FindByList(ctx context.Context, listID int32) ([]domain.SomedayTask, error)
	Create(ctx context.Context, task domain.NewSomedayTask) (*domain.SomedayTask, error)
	Update(ctx context.Context, id int32, patch domain.SomedayTaskPatch) (*domain.SomedayTask, error)
	ToggleCompleted(ctx context.Context, id int32) (*domain.SomedayTask, error)
	Delete(ctx context.Context, id int32) (int64, error)
}
