package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the ordering weight of a priority, higher meaning more urgent.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type WorkEnvironment string

const (
	EnvironmentHome     WorkEnvironment = "home"
	EnvironmentOffice   WorkEnvironment = "office"
	EnvironmentOutdoors WorkEnvironment = "outdoors"
	EnvironmentHybrid   WorkEnvironment = "hybrid"
)

// ScheduledSlot is a concrete placement of a task on the calendar.
type ScheduledSlot struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CalendarDayID *string   `json:"calendar_day_id,omitempty"`
}

type Task struct {
	ID                       string            `json:"task_id"`
	UserID                   string            `json:"user_id"`
	Title                    string            `json:"title"`
	Description              string            `json:"description,omitempty"`
	CategoryID               *string           `json:"category_id,omitempty"`
	Priority                 Priority          `json:"priority"`
	EstimatedDurationMinutes int               `json:"estimated_duration_minutes"`
	Deadline                 *time.Time        `json:"deadline,omitempty"`
	RequiresFocus            bool              `json:"requires_focus"`
	FittingEnvironments      []WorkEnvironment `json:"fitting_environments,omitempty"`
	ScheduledSlots           []ScheduledSlot   `json:"scheduled_slots,omitempty"`
	CreatedAt                time.Time         `json:"created_at"`
	UpdatedAt                time.Time         `json:"updated_at"`
}

// FitsEnvironment reports whether the task can be worked in the given
// environment. A task with no fitting environments fits anywhere.
func (t Task) FitsEnvironment(env WorkEnvironment) bool {
	if len(t.FittingEnvironments) == 0 {
		return true
	}
	for _, e := range t.FittingEnvironments {
		if e == env {
			return true
		}
	}
	return false
}
