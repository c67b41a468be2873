package domain

import "time"

// TaskTag associates a free-text tag with a task.
type TaskTag struct {
	ID        int32
	TaskID    int32
	TagName   string
	CreatedAt time.Time
}

// TagPreset is a reusable tag name with a usage counter.
type TagPreset struct {
	ID         int32
	Name       string
	UsageCount int32
	CreatedAt  time.Time
}

// ColorPreset is a named color; positions are unique across presets.
type ColorPreset struct {
	ID        int32
	Name      string
	HexValue  string
	Position  int32
	CreatedAt time.Time
}

// ColorPresetPatch describes a partial color preset update.
type ColorPresetPatch struct {
	Name     Field[string]
	HexValue Field[string]
}
