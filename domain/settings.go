package domain

import (
	"strings"
	"time"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts light/dark in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(s)) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", NewError(ErrCodeInvalid, "invalid theme: "+s)
}

// Default values of the singleton settings row.
const (
	DefaultColumnMinWidth        = 300
	DefaultSingleArrowDays       = 1
	DefaultDoubleArrowDays       = 7
	DefaultDrawerHeight          = 300
	DefaultAutoColumnBreakpoints = `{"small":640,"medium":1024,"large":1536,"xlarge":2048}`
	DefaultAutoColumnCounts      = `{"small":1,"medium":2,"large":3,"xlarge":5,"xxlarge":7}`
)

// Settings holds display preferences. The two JSON blobs are stored verbatim.
type Settings struct {
	ID                    int32
	ColumnMinWidth        int32
	TodayShowsPrevious    bool
	SingleArrowDays       int32
	DoubleArrowDays       int32
	AutoColumnBreakpoints string
	AutoColumnCounts      string
	DrawerHeight          int32
	DrawerIsOpen          bool
	Theme                 Theme
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DefaultSettings returns the row created on first read.
func DefaultSettings() Settings {
	return Settings{
		ColumnMinWidth:        DefaultColumnMinWidth,
		TodayShowsPrevious:    false,
		SingleArrowDays:       DefaultSingleArrowDays,
		DoubleArrowDays:       DefaultDoubleArrowDays,
		AutoColumnBreakpoints: DefaultAutoColumnBreakpoints,
		AutoColumnCounts:      DefaultAutoColumnCounts,
		DrawerHeight:          DefaultDrawerHeight,
		DrawerIsOpen:          true,
		Theme:                 ThemeLight,
	}
}

// SettingsPatch describes a partial settings update.
type SettingsPatch struct {
	ColumnMinWidth        Field[int32]
	TodayShowsPrevious    Field[bool]
	SingleArrowDays       Field[int32]
	DoubleArrowDays       Field[int32]
	AutoColumnBreakpoints Field[string]
	AutoColumnCounts      Field[string]
	DrawerHeight          Field[int32]
	DrawerIsOpen          Field[bool]
	Theme                 Field[Theme]
}
