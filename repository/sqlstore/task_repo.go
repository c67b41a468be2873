package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type taskRepository struct {
	base
}

// NewTaskRepository returns a gorm-backed implementation of TaskRepository.
func NewTaskRepository(db *gorm.DB, opts ...Option) repository.TaskRepository {
	return &taskRepository{base: newBase(db, opts)}
}

func (r *taskRepository) Create(ctx context.Context, task domain.NewTask) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	date, listID, position := task.Placement.Columns()
	now := r.now()
	m := taskModel{
		Title:     task.Title,
		Completed: task.Completed,
		Date:      date,
		ListID:    listID,
		Position:  position,
		Notes:     task.Notes,
		Color:     task.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	return r.list(ctx, r.db.WithContext(ctx).Order("id"))
}

func (r *taskRepository) FindIncomplete(ctx context.Context) ([]domain.Task, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("completed = ?", false).Order("id"))
}

func (r *taskRepository) FindByID(ctx context.Context, id int32) (*domain.Task, error) {
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := m.toDomain()
	return &out, nil
}

func (r *taskRepository) Update(ctx context.Context, id int32, patch domain.TaskPatch) (*domain.Task, error) {
	current, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	task := current.toDomain()

	title, err := patch.Title.Required("title", task.Title)
	if err != nil {
		return nil, err
	}
	if title, err = required("title", title); err != nil {
		return nil, err
	}
	completed, err := patch.Completed.Required("completed", task.Completed)
	if err != nil {
		return nil, err
	}
	placement, err := domain.ResolvePlacement(task.Placement, patch.Date, patch.ListID, patch.Position)
	if err != nil {
		return nil, err
	}
	date, listID, position := placement.Columns()

	updates := map[string]interface{}{
		"title":      title,
		"completed":  completed,
		"date":       date,
		"list_id":    listID,
		"position":   position,
		"notes":      patch.Notes.Apply(current.Notes),
		"color":      patch.Color.Apply(current.Color),
		"updated_at": r.touch(current.UpdatedAt),
	}
	res := r.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *taskRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&taskModel{}, id)
	if res.Error != nil {
		return 0, dbError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *taskRepository) find(ctx context.Context, id int32) (*taskModel, error) {
	var m taskModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrTaskNotFound)
	}
	return &m, nil
}

func (r *taskRepository) list(_ context.Context, q *gorm.DB) ([]domain.Task, error) {
	var rows []taskModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	tasks := make([]domain.Task, 0, len(rows))
	for _, m := range rows {
		tasks = append(tasks, m.toDomain())
	}
	return tasks, nil
}
