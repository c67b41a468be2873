package domain

import (
	"strings"
	"time"
)

// PlacementKind tells where a task lives in the UI.
type PlacementKind uint8

const (
	PlacementUnscheduled PlacementKind = iota
	PlacementCalendar
	PlacementSomeday
)

func (k PlacementKind) String() string {
	switch k {
	case PlacementCalendar:
		return "calendar"
	case PlacementSomeday:
		return "someday"
	default:
		return "unscheduled"
	}
}

// Placement is the tagged form of the nullable date/list_id/position columns.
// A task is either on a calendar date, inside a someday list, or neither.
type Placement struct {
	Kind     PlacementKind
	Date     time.Time // calendar only
	ListID   int32     // someday only
	Position *int32    // someday only, optional
}

// Unscheduled places a task nowhere.
func Unscheduled() Placement {
	return Placement{Kind: PlacementUnscheduled}
}

// OnDate places a task on the calendar.
func OnDate(date time.Time) Placement {
	return Placement{Kind: PlacementCalendar, Date: date}
}

// InList places a task inside a someday list.
func InList(listID int32, position *int32) Placement {
	return Placement{Kind: PlacementSomeday, ListID: listID, Position: position}
}

// PlacementFromColumns derives the variant from a stored row. list_id wins
// over date so rows written outside the mutation layer still classify.
func PlacementFromColumns(date *time.Time, listID, position *int32) Placement {
	switch {
	case listID != nil:
		return InList(*listID, position)
	case date != nil:
		return OnDate(*date)
	default:
		return Unscheduled()
	}
}

// Columns flattens the variant back into the stored nullable columns.
func (p Placement) Columns() (date *time.Time, listID, position *int32) {
	switch p.Kind {
	case PlacementCalendar:
		d := p.Date
		return &d, nil, nil
	case PlacementSomeday:
		id := p.ListID
		return nil, &id, p.Position
	default:
		return nil, nil, nil
	}
}

// ResolvePlacement applies date/list/position intents on top of the current
// placement and rejects combinations that would mix calendar and someday.
func ResolvePlacement(current Placement, date Field[time.Time], listID, position Field[int32]) (Placement, error) {
	curDate, curList, curPos := current.Columns()
	nextDate := date.Apply(curDate)
	nextList := listID.Apply(curList)
	nextPos := position.Apply(curPos)

	if nextDate != nil && nextList != nil {
		return current, ErrMixedPlacement
	}
	if nextList == nil && nextPos != nil {
		if position.IsSet() {
			return current, NewError(ErrCodeInvalid, "position requires a list")
		}
		nextPos = nil
	}
	return PlacementFromColumns(nextDate, nextList, nextPos), nil
}

// Task is the unified calendar/someday task.
type Task struct {
	ID        int32
	Title     string
	Completed bool
	Placement Placement
	Notes     *string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask holds the caller-supplied fields of a task.
type NewTask struct {
	Title     string
	Completed bool
	Placement Placement
	Notes     *string
	Color     *string
}

// Validate checks the fields a caller must supply.
func (n NewTask) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	return nil
}

// TaskPatch describes a partial task update.
type TaskPatch struct {
	Title     Field[string]
	Completed Field[bool]
	Date      Field[time.Time]
	ListID    Field[int32]
	Position  Field[int32]
	Notes     Field[string]
	Color     Field[string]
}

// SomedayTask is the someday-list view of a task: notes surface as description.
type SomedayTask struct {
	ID          int32
	ListID      int32
	Title       string
	Description *string
	Completed   bool
	Position    *int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SomedayTaskFromTask projects a task placed in a list. ok is false for
// tasks outside any list.
func SomedayTaskFromTask(t Task) (SomedayTask, bool) {
	if t.Placement.Kind != PlacementSomeday {
		return SomedayTask{}, false
	}
	return SomedayTask{
		ID:          t.ID,
		ListID:      t.Placement.ListID,
		Title:       t.Title,
		Description: t.Notes,
		Completed:   t.Completed,
		Position:    t.Placement.Position,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}, true
}

// NewSomedayTask holds the fields of a task created inside a list.
type NewSomedayTask struct {
	ListID      int32
	Title       string
	Description *string
	Position    int32
}

// SomedayTaskPatch describes a partial update of a list task.
type SomedayTaskPatch struct {
	ListID      Field[int32]
	Title       Field[string]
	Description Field[string]
	Completed   Field[bool]
	Position    Field[int32]
}
