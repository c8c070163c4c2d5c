package models

import "time"

type RuleAction string

const (
	ActionAllow              RuleAction = "allow"
	ActionBlock              RuleAction = "block"
	ActionWarn               RuleAction = "warn"
	ActionSuggestAlternative RuleAction = "suggest_alternative"
)

// Condition sources.
const (
	ConditionSourceTaskProperty = "task_property"
	ConditionSourceCalendarDay  = "calendar_day"
	ConditionSourceTimeSlot     = "time_slot"
)

// Condition operators.
const (
	OperatorEquals      = "equals"
	OperatorNotEquals   = "not_equals"
	OperatorGreaterThan = "greater_than"
	OperatorLessThan    = "less_than"
	OperatorIn          = "in"
	OperatorNotIn       = "not_in"
)

// RuleCondition is one predicate of a scheduling rule. Value carries
// whatever JSON the user stored: a string, number, bool, or list.
type RuleCondition struct {
	Source   string `json:"source"`
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Rule is a user-authored condition set plus an action applied to proposed
// placements on top of the built-in constraints. A rule triggers only when
// all of its conditions hold; an empty condition list never triggers.
type Rule struct {
	ID            string          `json:"rule_id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Conditions    []RuleCondition `json:"conditions"`
	Action        RuleAction      `json:"action"`
	AlertMessage  string          `json:"alert_message,omitempty"`
	PriorityOrder int             `json:"priority_order"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
