package domain

import "time"

// TaskLink is one URL in a task's ordered link list.
type TaskLink struct {
	ID        int32
	TaskID    int32
	URL       string
	Title     *string
	Position  int32
	CreatedAt time.Time
}

// TaskLinkPatch describes a partial link update.
type TaskLinkPatch struct {
	URL   Field[string]
	Title Field[string]
}
