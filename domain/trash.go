package domain

import "time"

// TrashRetention is how long trashed snapshots are kept before purge.
const TrashRetention = 7 * 24 * time.Hour

// TrashKind records which kind of task was trashed.
type TrashKind string

const (
	TrashCalendar TrashKind = "calendar"
	TrashSomeday  TrashKind = "someday"
)

// ParseTrashKind validates a task type discriminator.
func ParseTrashKind(s string) (TrashKind, error) {
	switch TrashKind(s) {
	case TrashCalendar, TrashSomeday:
		return TrashKind(s), nil
	}
	return "", NewError(ErrCodeInvalid, "invalid task type: "+s)
}

// TrashItem is a snapshot of a deleted task. TaskID is a copy of the old id,
// not a reference, so the item outlives the task.
type TrashItem struct {
	ID            int32
	TaskID        string
	TaskText      string
	TaskDate      time.Time
	TaskCompleted bool
	TaskType      TrashKind
	SomedayListID *int32
	DeletedAt     time.Time
}

// NewTrashItem holds the caller-supplied snapshot fields.
type NewTrashItem struct {
	TaskID        string
	TaskText      string
	TaskDate      time.Time
	TaskCompleted bool
	TaskType      TrashKind
	SomedayListID *int32
}
