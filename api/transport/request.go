package transport

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fastygo/alle/domain"
)

// Optional remembers whether a JSON member was present and whether it was
// null, so PUT bodies can tell "omitted" from "cleared".
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Field converts the member into an update intent.
func (o Optional[T]) Field() domain.Field[T] {
	switch {
	case !o.Present:
		return domain.Keep[T]()
	case o.Null:
		return domain.Clear[T]()
	default:
		return domain.Set(o.Value)
	}
}

type CreateTaskRequest struct {
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Date      *string `json:"date"`
	ListID    *int32  `json:"list_id"`
	Position  *int32  `json:"position"`
	Notes     *string `json:"notes"`
	Color     *string `json:"color"`
}

// NewTask validates the placement fields and builds the domain input.
func (r CreateTaskRequest) NewTask() (domain.NewTask, error) {
	var date domain.Field[time.Time]
	if r.Date != nil {
		parsed, err := ParseDate(*r.Date)
		if err != nil {
			return domain.NewTask{}, err
		}
		date = domain.Set(parsed)
	}
	placement, err := domain.ResolvePlacement(domain.Unscheduled(), date, domain.SetPtr(r.ListID), domain.SetPtr(r.Position))
	if err != nil {
		return domain.NewTask{}, err
	}
	return domain.NewTask{
		Title:     r.Title,
		Completed: r.Completed,
		Placement: placement,
		Notes:     r.Notes,
		Color:     r.Color,
	}, nil
}

type UpdateTaskRequest struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
	Date      Optional[string] `json:"date"`
	ListID    Optional[int32]  `json:"list_id"`
	Position  Optional[int32]  `json:"position"`
	Notes     Optional[string] `json:"notes"`
	Color     Optional[string] `json:"color"`
}

// Patch builds the domain patch. title and completed cannot be cleared.
func (r UpdateTaskRequest) Patch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		ListID:   r.ListID.Field(),
		Position: r.Position.Field(),
		Notes:    r.Notes.Field(),
		Color:    r.Color.Field(),
	}
	if r.Title.Present && !r.Title.Null {
		patch.Title = domain.Set(r.Title.Value)
	}
	if r.Completed.Present && !r.Completed.Null {
		patch.Completed = domain.Set(r.Completed.Value)
	}
	switch {
	case r.Date.Present && r.Date.Null:
		patch.Date = domain.Clear[time.Time]()
	case r.Date.Present:
		parsed, err := ParseDate(r.Date.Value)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Date = domain.Set(parsed)
	}
	return patch, nil
}

// ParseDate accepts RFC3339 timestamps and normalizes them to UTC.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.NewError(domain.ErrCodeInvalid, "invalid date format")
	}
	return parsed.UTC(), nil
}
