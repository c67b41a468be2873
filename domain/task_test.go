package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPlacementFromColumns(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, PlacementUnscheduled, PlacementFromColumns(nil, nil, nil).Kind)

	cal := PlacementFromColumns(&day, nil, nil)
	assert.Equal(t, PlacementCalendar, cal.Kind)
	assert.True(t, cal.Date.Equal(day))

	someday := PlacementFromColumns(nil, ptr[int32](3), ptr[int32](1))
	assert.Equal(t, PlacementSomeday, someday.Kind)
	assert.Equal(t, int32(3), someday.ListID)
	assert.Equal(t, int32(1), *someday.Position)

	// a stray date next to a list still reads as someday
	assert.Equal(t, PlacementSomeday, PlacementFromColumns(&day, ptr[int32](3), nil).Kind)
}

func TestPlacementColumnsRoundTrip(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range []Placement{Unscheduled(), OnDate(day), InList(2, ptr[int32](5)), InList(2, nil)} {
		d, l, pos := p.Columns()
		assert.Equal(t, p, PlacementFromColumns(d, l, pos), p.Kind.String())
	}
}

func TestResolvePlacement(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("keep everything", func(t *testing.T) {
		p, err := ResolvePlacement(OnDate(day), Keep[time.Time](), Keep[int32](), Keep[int32]())
		require.NoError(t, err)
		assert.Equal(t, OnDate(day), p)
	})

	t.Run("move calendar task into list", func(t *testing.T) {
		p, err := ResolvePlacement(OnDate(day), Clear[time.Time](), Set[int32](4), Set[int32](0))
		require.NoError(t, err)
		assert.Equal(t, PlacementSomeday, p.Kind)
		assert.Equal(t, int32(4), p.ListID)
	})

	t.Run("date plus list rejected", func(t *testing.T) {
		_, err := ResolvePlacement(OnDate(day), Keep[time.Time](), Set[int32](4), Keep[int32]())
		assert.ErrorIs(t, err, ErrMixedPlacement)
	})

	t.Run("leaving list drops position", func(t *testing.T) {
		p, err := ResolvePlacement(InList(4, ptr[int32](2)), Set(day), Clear[int32](), Keep[int32]())
		require.NoError(t, err)
		assert.Equal(t, OnDate(day), p)
	})

	t.Run("position without list rejected", func(t *testing.T) {
		_, err := ResolvePlacement(Unscheduled(), Keep[time.Time](), Keep[int32](), Set[int32](1))
		assert.True(t, IsDomainError(err, ErrCodeInvalid))
	})
}

func TestSomedayTaskFromTask(t *testing.T) {
	notes := "details"
	task := Task{ID: 9, Title: "Read", Notes: &notes, Placement: InList(2, ptr[int32](1))}

	st, ok := SomedayTaskFromTask(task)
	require.True(t, ok)
	assert.Equal(t, int32(2), st.ListID)
	assert.Equal(t, &notes, st.Description)

	_, ok = SomedayTaskFromTask(Task{Placement: Unscheduled()})
	assert.False(t, ok)
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("DARK")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	_, err = ParseTheme("sepia")
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestNewTaskRequiresNonBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		err := NewTask{Title: title}.Validate()
		assert.True(t, IsDomainError(err, ErrCodeInvalid), "title %q", title)
	}
	assert.NoError(t, NewTask{Title: " Buy milk "}.Validate())
}
