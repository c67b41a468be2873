package repository

import (
	"context"
	"time"

	"github.com/fastygo/alle/domain"
)

type TrashRepository interface {
	FindAll(ctx context.Context) ([]domain.TrashItem, error)
	Create(ctx context.Context, item domain.NewTrashItem) (*domain.TrashItem, error)
	Delete(ctx context.Context, id int32) (int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
