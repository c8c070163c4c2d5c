package models

import "time"

type ValidationStatus string

const (
	ValidationAllowed ValidationStatus = "allowed"
	ValidationWarned  ValidationStatus = "warned"
	ValidationBlocked ValidationStatus = "blocked"
)

// RuleEvaluation records the outcome of checking one scheduling rule
// against a proposed placement.
type RuleEvaluation struct {
	RuleID    string     `json:"rule_id"`
	RuleName  string     `json:"rule_name"`
	Action    RuleAction `json:"action"`
	Triggered bool       `json:"triggered"`
	Message   string     `json:"message,omitempty"`
	Severity  string     `json:"severity"`
}

// SuggestionSlot is a scored candidate placement for a task.
type SuggestionSlot struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Score         float64   `json:"score"`
	Reason        string    `json:"reason"`
	CalendarDayID *string   `json:"calendar_day_id,omitempty"`
}

// ValidationResult is the full decision for one proposed placement. Any
// block reason makes the placement invalid; warnings leave it valid.
type ValidationResult struct {
	IsValid         bool             `json:"is_valid"`
	Result          ValidationStatus `json:"validation_result"`
	Warnings        []string         `json:"warnings"`
	BlockReasons    []string         `json:"block_reasons"`
	Suggestions     []SuggestionSlot `json:"suggestions"`
	RuleEvaluations []RuleEvaluation `json:"rule_evaluations"`
}

// ScheduledTask summarizes one successful auto-schedule placement.
type ScheduledTask struct {
	TaskID        string    `json:"task_id"`
	Title         string    `json:"title"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Score         float64   `json:"score"`
}

// FailedTask summarizes one task the auto-scheduler could not place.
type FailedTask struct {
	TaskID string   `json:"task_id,omitempty"`
	Title  string   `json:"title,omitempty"`
	Reason string   `json:"reason"`
	Errors []string `json:"errors,omitempty"`
}

// ScheduleSummary is the partial-success result of one auto-schedule batch.
type ScheduleSummary struct {
	Scheduled   []ScheduledTask `json:"scheduled"`
	Failed      []FailedTask    `json:"failed"`
	TotalTasks  int             `json:"total_tasks"`
	SuccessRate float64         `json:"success_rate"`
}
