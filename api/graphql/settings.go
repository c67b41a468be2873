package graphql

import (
	"context"
	"strings"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var settingsModule = Module{
	Name: "settings",
	Types: `
enum Theme {
	LIGHT
	DARK
}

type Settings {
	id: Int!
	columnMinWidth: Int!
	todayShowsPrevious: Boolean!
	singleArrowDays: Int!
	doubleArrowDays: Int!
	autoColumnBreakpoints: String!
	autoColumnCounts: String!
	drawerHeight: Int!
	drawerIsOpen: Boolean!
	theme: Theme!
	createdAt: String!
	updatedAt: String!
}

input UpdateSettingsInput {
	columnMinWidth: Int
	todayShowsPrevious: Boolean
	singleArrowDays: Int
	doubleArrowDays: Int
	autoColumnBreakpoints: String
	autoColumnCounts: String
	drawerHeight: Int
	drawerIsOpen: Boolean
	theme: Theme
}
`,
	Queries: `
settings: Settings!
`,
	Mutations: `
updateSettings(input: UpdateSettingsInput!): Settings!
`,
}

type settingsAPI struct {
	c *app.Container
}

type updateSettingsInput struct {
	ColumnMinWidth        *int32
	TodayShowsPrevious    *bool
	SingleArrowDays       *int32
	DoubleArrowDays       *int32
	AutoColumnBreakpoints *string
	AutoColumnCounts      *string
	DrawerHeight          *int32
	DrawerIsOpen          *bool
	Theme                 *string
}

func (a *settingsAPI) Settings(ctx context.Context) (*settingsResolver, error) {
	s, err := a.c.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &settingsResolver{s: *s}, nil
}

func (a *settingsAPI) UpdateSettings(ctx context.Context, args struct{ Input updateSettingsInput }) (*settingsResolver, error) {
	in := args.Input
	theme := domain.Keep[domain.Theme]()
	if in.Theme != nil {
		t, err := domain.ParseTheme(*in.Theme)
		if err != nil {
			return nil, err
		}
		theme = domain.Set(t)
	}

	s, err := a.c.Settings.Update(ctx, domain.SettingsPatch{
		ColumnMinWidth:        keepOrSet(in.ColumnMinWidth),
		TodayShowsPrevious:    keepOrSet(in.TodayShowsPrevious),
		SingleArrowDays:       keepOrSet(in.SingleArrowDays),
		DoubleArrowDays:       keepOrSet(in.DoubleArrowDays),
		AutoColumnBreakpoints: keepOrSet(in.AutoColumnBreakpoints),
		AutoColumnCounts:      keepOrSet(in.AutoColumnCounts),
		DrawerHeight:          keepOrSet(in.DrawerHeight),
		DrawerIsOpen:          keepOrSet(in.DrawerIsOpen),
		Theme:                 theme,
	})
	if err != nil {
		return nil, err
	}
	return &settingsResolver{s: *s}, nil
}

type settingsResolver struct {
	s domain.Settings
}

func (r *settingsResolver) ID() int32                     { return r.s.ID }
func (r *settingsResolver) ColumnMinWidth() int32         { return r.s.ColumnMinWidth }
func (r *settingsResolver) TodayShowsPrevious() bool      { return r.s.TodayShowsPrevious }
func (r *settingsResolver) SingleArrowDays() int32        { return r.s.SingleArrowDays }
func (r *settingsResolver) DoubleArrowDays() int32        { return r.s.DoubleArrowDays }
func (r *settingsResolver) AutoColumnBreakpoints() string { return r.s.AutoColumnBreakpoints }
func (r *settingsResolver) AutoColumnCounts() string      { return r.s.AutoColumnCounts }
func (r *settingsResolver) DrawerHeight() int32           { return r.s.DrawerHeight }
func (r *settingsResolver) DrawerIsOpen() bool            { return r.s.DrawerIsOpen }
func (r *settingsResolver) Theme() string                 { return strings.ToUpper(string(r.s.Theme)) }
func (r *settingsResolver) CreatedAt() string             { return formatTime(r.s.CreatedAt) }
func (r *settingsResolver) UpdatedAt() string             { return formatTime(r.s.UpdatedAt) }
