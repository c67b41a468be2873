package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

// AttachmentRemover deletes every attachment of a task, blobs included.
type AttachmentRemover interface {
	DeleteAllForTask(ctx context.Context, taskID int32) (int64, error)
}

// UseCase fronts the task repositories for handlers that need more than one
// store touched per call.
type UseCase struct {
	tasks       repository.TaskRepository
	someday     repository.SomedayTaskRepository
	attachments AttachmentRemover
	logger      *zap.Logger
}

func New(tasks repository.TaskRepository, someday repository.SomedayTaskRepository, attachments AttachmentRemover, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:       tasks,
		someday:     someday,
		attachments: attachments,
		logger:      logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.FindAll(ctx)
}

func (uc *UseCase) ListIncomplete(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.FindIncomplete(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id int32) (*domain.Task, error) {
	return uc.tasks.FindByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, task domain.NewTask) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return uc.tasks.Create(ctx, task)
}

func (uc *UseCase) UpdateTask(ctx context.Context, id int32, patch domain.TaskPatch) (*domain.Task, error) {
	return uc.tasks.Update(ctx, id, patch)
}

// DeleteTask removes the task's attachments, then the task. Tags and links
// go with the row through the foreign keys.
func (uc *UseCase) DeleteTask(ctx context.Context, id int32) (bool, error) {
	return uc.deleteWith(ctx, id, uc.tasks.Delete)
}

// DeleteSomedayTask is DeleteTask restricted to tasks inside a list. Any
// other row is left alone, attachments included.
func (uc *UseCase) DeleteSomedayTask(ctx context.Context, id int32) (bool, error) {
	task, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if task.Placement.Kind != domain.PlacementSomeday {
		return false, nil
	}
	return uc.deleteWith(ctx, id, uc.someday.Delete)
}

func (uc *UseCase) deleteWith(ctx context.Context, id int32, del func(context.Context, int32) (int64, error)) (bool, error) {
	if uc.attachments != nil {
		removed, err := uc.attachments.DeleteAllForTask(ctx, id)
		if err != nil {
			uc.logger.Error("failed to remove task attachments", zap.Int32("task_id", id), zap.Error(err))
			return false, err
		}
		if removed > 0 {
			uc.logger.Debug("removed task attachments", zap.Int32("task_id", id), zap.Int64("count", removed))
		}
	}
	n, err := del(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
