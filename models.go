package dayforge

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID        string       `json:"id"`
	Text      string       `json:"task"`
	Priority  TaskPriority `json:"priority"`
	Completed bool         `json:"completed"`
	CreatedAt time.Time    `json:"createdAt,omitzero"`
	UpdatedAt time.Time    `json:"updatedAt,omitzero"`
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TaskPatch carries the fields of a partial update. Nil fields are left
// untouched by the backend.
type TaskPatch struct {
	Text      *string       `json:"task,omitempty"`
	Priority  *TaskPriority `json:"priority,omitempty"`
	Completed *bool         `json:"completed,omitempty"`
}

func (p TaskPatch) Empty() bool {
	return p.Text == nil && p.Priority == nil && p.Completed == nil
}

// HabitsProfile is the user's working-hours and break preferences, sent as
// scheduling input. It lives only in UI state; the backend never stores it.
type HabitsProfile struct {
	WorkStartTime  string `json:"workStartTime"`
	WorkEndTime    string `json:"workEndTime"`
	BreakDuration  int    `json:"breakDuration"`
	BreakFrequency int    `json:"breakFrequency"`
	FocusArea      string `json:"focusArea"`
}

// ScheduleItem is one slot of a generated daily plan. Display fields only;
// ordering is whatever the backend returned.
type ScheduleItem struct {
	Time          string      `json:"time"`
	Task          string      `json:"task"`
	Duration      string      `json:"duration"`
	BreakDuration BreakLength `json:"breakDuration,omitempty"`
}

// BreakLength arrives as either a string ("15m") or a bare number of minutes
// depending on the backend; either way it is only displayed.
type BreakLength string

func (b *BreakLength) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = BreakLength(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("breakDuration is neither string nor number: %s", data)
	}
	*b = BreakLength(n.String())
	return nil
}

// Account is the fixed-field identity of a signed-in user. Provider-specific
// fields are dropped at the boundary.
type Account struct {
	Name     string
	Username string
}

func (a Account) DisplayName() string {
	if n := strings.TrimSpace(a.Name); n != "" {
		return n
	}
	return a.Username
}

type Session struct {
	Account   Account
	ExpiresAt time.Time
}
