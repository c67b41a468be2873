package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type taskLinkRepository struct {
	base
}

// NewTaskLinkRepository returns a gorm-backed TaskLinkRepository.
func NewTaskLinkRepository(db *gorm.DB, opts ...Option) repository.TaskLinkRepository {
	return &taskLinkRepository{base: newBase(db, opts)}
}

// Add appends a link after the task's current last position. Positions are
// never reused or compacted.
func (r *taskLinkRepository) Add(ctx context.Context, taskID int32, url string, title *string) (*domain.TaskLink, error) {
	url, err := required("url", url)
	if err != nil {
		return nil, err
	}

	var maxPos int32
	row := r.db.WithContext(ctx).
		Model(&taskLinkModel{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(MAX(position), -1)").
		Row()
	if err := row.Scan(&maxPos); err != nil {
		return nil, dbError(err)
	}

	m := taskLinkModel{TaskID: taskID, URL: url, Title: title, Position: maxPos + 1, CreatedAt: r.now()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *taskLinkRepository) FindByTask(ctx context.Context, taskID int32) ([]domain.TaskLink, error) {
	var rows []taskLinkModel
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("position, id").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	links := make([]domain.TaskLink, 0, len(rows))
	for _, m := range rows {
		links = append(links, m.toDomain())
	}
	return links, nil
}

func (r *taskLinkRepository) Update(ctx context.Context, id int32, patch domain.TaskLinkPatch) (*domain.TaskLink, error) {
	var m taskLinkModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrLinkNotFound)
	}
	url, err := patch.URL.Required("url", m.URL)
	if err != nil {
		return nil, err
	}
	if m.URL, err = required("url", url); err != nil {
		return nil, err
	}
	m.Title = patch.Title.Apply(m.Title)

	err = r.db.WithContext(ctx).Model(&m).Select("url", "title").Updates(map[string]interface{}{
		"url":   m.URL,
		"title": m.Title,
	}).Error
	if err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *taskLinkRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&taskLinkModel{}, id)
	return res.RowsAffected, dbError(res.Error)
}

func (r *taskLinkRepository) DeleteByTask(ctx context.Context, taskID int32) (int64, error) {
	res := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&taskLinkModel{})
	return res.RowsAffected, dbError(res.Error)
}
