package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type taskTagRepository struct {
	base
}

// NewTaskTagRepository returns a gorm-backed TaskTagRepository.
func NewTaskTagRepository(db *gorm.DB, opts ...Option) repository.TaskTagRepository {
	return &taskTagRepository{base: newBase(db, opts)}
}

func (r *taskTagRepository) Add(ctx context.Context, taskID int32, tagName string) (*domain.TaskTag, error) {
	tagName, err := required("tag name", tagName)
	if err != nil {
		return nil, err
	}
	m := taskTagModel{TaskID: taskID, TagName: tagName, CreatedAt: r.now()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *taskTagRepository) FindByTask(ctx context.Context, taskID int32) ([]domain.TaskTag, error) {
	var rows []taskTagModel
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	tags := make([]domain.TaskTag, 0, len(rows))
	for _, m := range rows {
		tags = append(tags, m.toDomain())
	}
	return tags, nil
}

// AllNames returns every distinct tag name in use, sorted.
func (r *taskTagRepository) AllNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Model(&taskTagModel{}).
		Distinct("tag_name").
		Order("tag_name").
		Pluck("tag_name", &names).Error
	if err != nil {
		return nil, dbError(err)
	}
	return names, nil
}

func (r *taskTagRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&taskTagModel{}, id)
	return res.RowsAffected, dbError(res.Error)
}

func (r *taskTagRepository) DeleteByTask(ctx context.Context, taskID int32) (int64, error) {
	res := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&taskTagModel{})
	return res.RowsAffected, dbError(res.Error)
}
