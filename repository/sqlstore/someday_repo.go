package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type somedayListRepository struct {
	base
}

// NewSomedayListRepository returns a gorm-backed SomedayListRepository.
func NewSomedayListRepository(db *gorm.DB, opts ...Option) repository.SomedayListRepository {
	return &somedayListRepository{base: newBase(db, opts)}
}

func (r *somedayListRepository) FindAll(ctx context.Context) ([]domain.SomedayList, error) {
	var rows []somedayListModel
	if err := r.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	lists := make([]domain.SomedayList, 0, len(rows))
	for _, m := range rows {
		lists = append(lists, m.toDomain())
	}
	return lists, nil
}

func (r *somedayListRepository) Create(ctx context.Context, name string, position int32) (*domain.SomedayList, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	now := r.now()
	m := somedayListModel{Name: name, Position: position, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *somedayListRepository) Update(ctx context.Context, id int32, patch domain.SomedayListPatch) (*domain.SomedayList, error) {
	var m somedayListModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrSomedayListNotFound)
	}

	name, err := patch.Name.Required("name", m.Name)
	if err != nil {
		return nil, err
	}
	if name, err = required("name", name); err != nil {
		return nil, err
	}
	position, err := patch.Position.Required("position", m.Position)
	if err != nil {
		return nil, err
	}

	m.Name, m.Position, m.UpdatedAt = name, position, r.touch(m.UpdatedAt)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

// Delete removes the list. Tasks inside it are detached by the foreign key.
func (r *somedayListRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&somedayListModel{}, id)
	if res.Error != nil {
		return 0, dbError(res.Error)
	}
	return res.RowsAffected, nil
}

type somedayTaskRepository struct {
	base
}

// NewSomedayTaskRepository returns a SomedayTaskRepository over the unified
// tasks table, restricted to rows that have a list.
func NewSomedayTaskRepository(db *gorm.DB, opts ...Option) repository.SomedayTaskRepository {
	return &somedayTaskRepository{base: newBase(db, opts)}
}

func (r *somedayTaskRepository) inLists(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&taskModel{}).Where("list_id IS NOT NULL")
}

func (r *somedayTaskRepository) FindAll(ctx context.Context) ([]domain.SomedayTask, error) {
	return r.list(r.inLists(ctx).Order("list_id, position, id"))
}

func (r *somedayTaskRepository) FindByList(ctx context.Context, listID int32) ([]domain.SomedayTask, error) {
	return r.list(r.db.WithContext(ctx).Where("list_id = ?", listID).Order("position, id"))
}

func (r *somedayTaskRepository) Create(ctx context.Context, task domain.NewSomedayTask) (*domain.SomedayTask, error) {
	title, err := required("title", task.Title)
	if err != nil {
		return nil, err
	}
	listID, position := task.ListID, task.Position
	now := r.now()
	m := taskModel{
		Title:     title,
		ListID:    &listID,
		Position:  &position,
		Notes:     task.Description,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	return toSomedayTask(m)
}

func (r *somedayTaskRepository) Update(ctx context.Context, id int32, patch domain.SomedayTaskPatch) (*domain.SomedayTask, error) {
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	listID, err := patch.ListID.Required("list_id", *m.ListID)
	if err != nil {
		return nil, err
	}
	title, err := patch.Title.Required("title", m.Title)
	if err != nil {
		return nil, err
	}
	if title, err = required("title", title); err != nil {
		return nil, err
	}
	completed, err := patch.Completed.Required("completed", m.Completed)
	if err != nil {
		return nil, err
	}

	m.ListID = &listID
	m.Title = title
	m.Completed = completed
	m.Notes = patch.Description.Apply(m.Notes)
	m.Position = patch.Position.Apply(m.Position)
	m.UpdatedAt = r.touch(m.UpdatedAt)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, dbError(err)
	}
	return toSomedayTask(*m)
}

func (r *somedayTaskRepository) ToggleCompleted(ctx context.Context, id int32) (*domain.SomedayTask, error) {
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Completed = !m.Completed
	m.UpdatedAt = r.touch(m.UpdatedAt)
	err = r.db.WithContext(ctx).Model(m).Select("completed", "updated_at").Updates(m).Error
	if err != nil {
		return nil, dbError(err)
	}
	return toSomedayTask(*m)
}

func (r *somedayTaskRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND list_id IS NOT NULL", id).Delete(&taskModel{})
	if res.Error != nil {
		return 0, dbError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *somedayTaskRepository) find(ctx context.Context, id int32) (*taskModel, error) {
	var m taskModel
	if err := r.inLists(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err, domain.ErrTaskNotFound)
	}
	return &m, nil
}

func (r *somedayTaskRepository) list(q *gorm.DB) ([]domain.SomedayTask, error) {
	var rows []taskModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	out := make([]domain.SomedayTask, 0, len(rows))
	for _, m := range rows {
		if st, ok := domain.SomedayTaskFromTask(m.toDomain()); ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func toSomedayTask(m taskModel) (*domain.SomedayTask, error) {
	st, ok := domain.SomedayTaskFromTask(m.toDomain())
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &st, nil
}
