package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type settingsRepository struct {
	base
}

// NewSettingsRepository returns a gorm-backed SettingsRepository.
func NewSettingsRepository(db *gorm.DB, opts ...Option) repository.SettingsRepository {
	return &settingsRepository{base: newBase(db, opts)}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	m, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := m.toDomain()
	return &out, nil
}

func (r *settingsRepository) Update(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error) {
	m, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var errs []error
	m.ColumnMinWidth = requiredField(patch.ColumnMinWidth, "column_min_width", m.ColumnMinWidth, &errs)
	m.TodayShowsPrevious = requiredField(patch.TodayShowsPrevious, "today_shows_previous", m.TodayShowsPrevious, &errs)
	m.SingleArrowDays = requiredField(patch.SingleArrowDays, "single_arrow_days", m.SingleArrowDays, &errs)
	m.DoubleArrowDays = requiredField(patch.DoubleArrowDays, "double_arrow_days", m.DoubleArrowDays, &errs)
	m.AutoColumnBreakpoints = requiredField(patch.AutoColumnBreakpoints, "auto_column_breakpoints", m.AutoColumnBreakpoints, &errs)
	m.AutoColumnCounts = requiredField(patch.AutoColumnCounts, "auto_column_counts", m.AutoColumnCounts, &errs)
	m.DrawerHeight = requiredField(patch.DrawerHeight, "drawer_height", m.DrawerHeight, &errs)
	m.DrawerIsOpen = requiredField(patch.DrawerIsOpen, "drawer_is_open", m.DrawerIsOpen, &errs)
	m.Theme = string(requiredField(patch.Theme, "theme", domain.Theme(m.Theme), &errs))
	if len(errs) > 0 {
		return nil, errs[0]
	}
	m.UpdatedAt = r.touch(m.UpdatedAt)

	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, dbError(err)
	}
	out := m.toDomain()
	return &out, nil
}

// load returns the first settings row, inserting the defaults when the table
// is empty.
func (r *settingsRepository) load(ctx context.Context) (*settingsModel, error) {
	var m settingsModel
	err := r.db.WithContext(ctx).Order("id").First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dbError(err)
	}

	d := domain.DefaultSettings()
	now := r.now()
	m = settingsModel{
		ColumnMinWidth:        d.ColumnMinWidth,
		TodayShowsPrevious:    d.TodayShowsPrevious,
		SingleArrowDays:       d.SingleArrowDays,
		DoubleArrowDays:       d.DoubleArrowDays,
		AutoColumnBreakpoints: d.AutoColumnBreakpoints,
		AutoColumnCounts:      d.AutoColumnCounts,
		DrawerHeight:          d.DrawerHeight,
		DrawerIsOpen:          d.DrawerIsOpen,
		Theme:                 string(d.Theme),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, dbError(err)
	}
	return &m, nil
}

func requiredField[T any](f domain.Field[T], name string, current T, errs *[]error) T {
	v, err := f.Required(name, current)
	if err != nil {
		*errs = append(*errs, err)
	}
	return v
}
