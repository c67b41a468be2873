package domain

import "time"

// SomedayList groups tasks that have no calendar date.
type SomedayList struct {
	ID        int32
	Name      string
	Position  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SomedayListPatch describes a partial list update.
type SomedayListPatch struct {
	Name     Field[string]
	Position Field[int32]
}
