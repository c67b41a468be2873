package sqlstore

import (
	"time"

	"github.com/fastygo/alle/domain"
)

// Row shapes of the final schema. Timestamps are written explicitly by the
// repositories so the injected clock is the only time source.

type taskModel struct {
	ID        int32 `gorm:"primaryKey"`
	Title     string
	Completed bool
	Date      *time.Time
	ListID    *int32
	Position  *int32
	Notes     *string
	Color     *string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (taskModel) TableName() string { return "tasks" }

func (m taskModel) toDomain() domain.Task {
	return domain.Task{
		ID:        m.ID,
		Title:     m.Title,
		Completed: m.Completed,
		Placement: domain.PlacementFromColumns(m.Date, m.ListID, m.Position),
		Notes:     m.Notes,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type somedayListModel struct {
	ID        int32 `gorm:"primaryKey"`
	Name      string
	Position  int32
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (somedayListModel) TableName() string { return "someday_lists" }

func (m somedayListModel) toDomain() domain.SomedayList {
	return domain.SomedayList{ID: m.ID, Name: m.Name, Position: m.Position, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

type taskTagModel struct {
	ID        int32 `gorm:"primaryKey"`
	TaskID    int32
	TagName   string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (taskTagModel) TableName() string { return "task_tags" }

func (m taskTagModel) toDomain() domain.TaskTag {
	return domain.TaskTag{ID: m.ID, TaskID: m.TaskID, TagName: m.TagName, CreatedAt: m.CreatedAt}
}

type taskLinkModel struct {
	ID        int32 `gorm:"primaryKey"`
	TaskID    int32
	URL       string `gorm:"column:url"`
	Title     *string
	Position  int32
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (taskLinkModel) TableName() string { return "task_links" }

func (m taskLinkModel) toDomain() domain.TaskLink {
	return domain.TaskLink{ID: m.ID, TaskID: m.TaskID, URL: m.URL, Title: m.Title, Position: m.Position, CreatedAt: m.CreatedAt}
}

type attachmentModel struct {
	ID          int32 `gorm:"primaryKey"`
	TaskID      int32
	FileName    string
	FileSize    int64
	MimeType    string
	StoragePath string
	UploadedAt  time.Time
}

func (attachmentModel) TableName() string { return "task_attachments" }

func (m attachmentModel) toDomain() domain.TaskAttachment {
	return domain.TaskAttachment{
		ID:          m.ID,
		TaskID:      m.TaskID,
		FileName:    m.FileName,
		FileSize:    m.FileSize,
		MimeType:    m.MimeType,
		StoragePath: m.StoragePath,
		UploadedAt:  m.UploadedAt,
	}
}

type tagPresetModel struct {
	ID         int32 `gorm:"primaryKey"`
	Name       string
	UsageCount int32
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (tagPresetModel) TableName() string { return "tag_presets" }

func (m tagPresetModel) toDomain() domain.TagPreset {
	return domain.TagPreset{ID: m.ID, Name: m.Name, UsageCount: m.UsageCount, CreatedAt: m.CreatedAt}
}

type colorPresetModel struct {
	ID        int32 `gorm:"primaryKey"`
	Name      string
	HexValue  string
	Position  int32
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (colorPresetModel) TableName() string { return "color_presets" }

func (m colorPresetModel) toDomain() domain.ColorPreset {
	return domain.ColorPreset{ID: m.ID, Name: m.Name, HexValue: m.HexValue, Position: m.Position, CreatedAt: m.CreatedAt}
}

type settingsModel struct {
	ID                    int32 `gorm:"primaryKey"`
	ColumnMinWidth        int32
	TodayShowsPrevious    bool
	SingleArrowDays       int32
	DoubleArrowDays       int32
	AutoColumnBreakpoints string
	AutoColumnCounts      string
	DrawerHeight          int32
	DrawerIsOpen          bool
	Theme                 string
	CreatedAt             time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime:false"`
}

func (settingsModel) TableName() string { return "settings" }

func (m settingsModel) toDomain() domain.Settings {
	return domain.Settings{
		ID:                    m.ID,
		ColumnMinWidth:        m.ColumnMinWidth,
		TodayShowsPrevious:    m.TodayShowsPrevious,
		SingleArrowDays:       m.SingleArrowDays,
		DoubleArrowDays:       m.DoubleArrowDays,
		AutoColumnBreakpoints: m.AutoColumnBreakpoints,
		AutoColumnCounts:      m.AutoColumnCounts,
		DrawerHeight:          m.DrawerHeight,
		DrawerIsOpen:          m.DrawerIsOpen,
		Theme:                 domain.Theme(m.Theme),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

type trashModel struct {
	ID            int32 `gorm:"primaryKey"`
	TaskID        string
	TaskText      string
	TaskDate      time.Time
	TaskCompleted bool
	DeletedAt     time.Time
	TaskType      string
	SomedayListID *int32
}

func (trashModel) TableName() string { return "trash" }

func (m trashModel) toDomain() domain.TrashItem {
	return domain.TrashItem{
		ID:            m.ID,
		TaskID:        m.TaskID,
		TaskText:      m.TaskText,
		TaskDate:      m.TaskDate,
		TaskCompleted: m.TaskCompleted,
		TaskType:      domain.TrashKind(m.TaskType),
		SomedayListID: m.SomedayListID,
		DeletedAt:     m.DeletedAt,
	}
}
