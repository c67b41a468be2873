package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type trashRepository struct {
	base
}

// NewTrashRepository returns a gorm-backed TrashRepository.
func NewTrashRepository(db *gorm.DB, opts ...Option) repository.TrashRepository {
	return &trashRepository{base: newBase(db, opts)}
}

func (r *trashRepository) FindAll(ctx context.Context) ([]domain.TrashItem, error) {
	var rows []trashModel
	if err := r.db.WithContext(ctx).Order("deleted_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	out := make([]domain.TrashItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *trashRepository) Create(ctx context.Context, item domain.NewTrashItem) (*domain.TrashItem, error) {
	if _, err := required("task id", item.TaskID); err != nil {
		return nil, err
	}
	kind, err := domain.ParseTrashKind(string(item.TaskType))
	if err != nil {
		return nil, err
	}
	m := trashModel{
		TaskID:        item.TaskID,
		TaskText:      item.TaskText,
		TaskDate:      item.TaskDate.UTC(),
		TaskCompleted: item.TaskCompleted,
		TaskType:      string(kind),
		SomedayListID: item.SomedayListID,
		DeletedAt:     r.now(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *trashRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&trashModel{}, id)
	return res.RowsAffected, dbError(res.Error)
}

// PurgeOlderThan removes snapshots trashed before cutoff.
func (r *trashRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("deleted_at < ?", cutoff.UTC()).Delete(&trashModel{})
	return res.RowsAffected, dbError(res.Error)
}
