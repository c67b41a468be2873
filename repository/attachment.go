package repository

import (
	"context"

	"github.com/fastygo/alle/domain"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment domain.TaskAttachment) (*domain.TaskAttachment, error)
	FindByID(ctx context.Context, id int32) (*domain.TaskAttachment, error)
	FindByTask(ctx context.Context, taskID int32) ([]domain.TaskAttachment, error)
	Delete(ctx context.Context, id int32) (int64, error)
	DeleteByTask(ctx context.Context, taskID int32) (int64, error)
}
