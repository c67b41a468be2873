package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type tagPresetRepository struct {
	base
}

// NewTagPresetRepository returns a gorm-backed TagPresetRepository.
func NewTagPresetRepository(db *gorm.DB, opts ...Option) repository.TagPresetRepository {
	return &tagPresetRepository{base: newBase(db, opts)}
}

func (r *tagPresetRepository) Create(ctx context.Context, name string) (*domain.TagPreset, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	if err := r.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}
	m := tagPresetModel{Name: name, CreatedAt: r.now()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrTagPresetExists
		}
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *tagPresetRepository) FindAll(ctx context.Context) ([]domain.TagPreset, error) {
	var rows []tagPresetModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	out := make([]domain.TagPreset, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *tagPresetRepository) FindByName(ctx context.Context, name string) (*domain.TagPreset, error) {
	var m tagPresetModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, notFound(err, domain.ErrTagPresetNotFound)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *tagPresetRepository) Rename(ctx context.Context, id int32, name string) (*domain.TagPreset, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(m).Update("name", name).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrTagPresetExists
		}
		return nil, dbError(err)
	}
	m.Name = name
	out := m.toDomain()
	return &out, nil
}

func (r *tagPresetRepository) IncrementUsage(ctx context.Context, id int32) (*domain.TagPreset, error) {
	res := r.db.WithContext(ctx).
		Model(&tagPresetModel{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return nil, dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrTagPresetNotFound
	}
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := m.toDomain()
	return &out, nil
}

func (r *tagPresetRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&tagPresetModel{}, id)
	return res.RowsAffected, dbError(res.Error)
}

func (r *tagPresetRepository) find(ctx context.Context, id int32) (*tagPresetModel, error) {
	var m tagPresetModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrTagPresetNotFound)
	}
	return &m, nil
}

func (r *tagPresetRepository) ensureNameFree(ctx context.Context, name string, self int32) error {
	existing, err := r.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrTagPresetNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return domain.ErrTagPresetExists
	}
	return nil
}

type colorPresetRepository struct {
	base
}

// NewColorPresetRepository returns a gorm-backed ColorPresetRepository.
func NewColorPresetRepository(db *gorm.DB, opts ...Option) repository.ColorPresetRepository {
	return &colorPresetRepository{base: newBase(db, opts)}
}

func (r *colorPresetRepository) Create(ctx context.Context, name, hexValue string) (*domain.ColorPreset, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	if hexValue, err = required("hex value", hexValue); err != nil {
		return nil, err
	}

	var maxPos int32
	row := r.db.WithContext(ctx).Model(&colorPresetModel{}).Select("COALESCE(MAX(position), -1)").Row()
	if err := row.Scan(&maxPos); err != nil {
		return nil, dbError(err)
	}

	m := colorPresetModel{Name: name, HexValue: hexValue, Position: maxPos + 1, CreatedAt: r.now()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

func (r *colorPresetRepository) FindAll(ctx context.Context) ([]domain.ColorPreset, error) {
	rows, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ColorPreset, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *colorPresetRepository) Update(ctx context.Context, id int32, patch domain.ColorPresetPatch) (*domain.ColorPreset, error) {
	var m colorPresetModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrColorPresetNotFound)
	}
	name, err := patch.Name.Required("name", m.Name)
	if err != nil {
		return nil, err
	}
	hexValue, err := patch.HexValue.Required("hex value", m.HexValue)
	if err != nil {
		return nil, err
	}
	if m.Name, err = required("name", name); err != nil {
		return nil, err
	}
	if m.HexValue, err = required("hex value", hexValue); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&m).Updates(map[string]interface{}{"name": m.Name, "hex_value": m.HexValue}).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

// Reorder gives ids the positions 0..len(ids)-1 in order; presets not listed
// keep their relative order after them. Every row is first parked on a
// negative position so the unique index never sees two rows on one slot.
func (r *colorPresetRepository) Reorder(ctx context.Context, ids []int32) ([]domain.ColorPreset, error) {
	existing, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int32]bool, len(existing))
	for _, m := range existing {
		known[m.ID] = true
	}

	order := make([]int32, 0, len(existing))
	seen := make(map[int32]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, domain.NewError(domain.ErrCodeInvalid, "duplicate id in reorder list")
		}
		if !known[id] {
			return nil, domain.ErrColorPresetNotFound
		}
		seen[id] = true
		order = append(order, id)
	}
	for _, m := range existing {
		if !seen[m.ID] {
			order = append(order, m.ID)
		}
	}

	for i, id := range order {
		if err := r.setPosition(ctx, id, int32(-(i + 1))); err != nil {
			return nil, err
		}
	}
	for i, id := range order {
		if err := r.setPosition(ctx, id, int32(i)); err != nil {
			return nil, err
		}
	}
	return r.FindAll(ctx)
}

func (r *colorPresetRepository) Delete(ctx context.Context, id int32) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&colorPresetModel{}, id)
	return res.RowsAffected, dbError(res.Error)
}

func (r *colorPresetRepository) all(ctx context.Context) ([]colorPresetModel, error) {
	var rows []colorPresetModel
	if err := r.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}
	return rows, nil
}

func (r *colorPresetRepository) setPosition(ctx context.Context, id, position int32) error {
	res := r.db.WithContext(ctx).Model(&colorPresetModel{}).Where("id = ?", id).Update("position", position)
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrColorPresetNotFound
	}
	return nil
}
