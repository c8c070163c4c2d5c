// Package rules evaluates user-defined scheduling rules against a task, a
// resolved day context, and a candidate time span. Evaluation is pure: the
// caller supplies the rule set and receives one verdict per rule.
package rules

import (
	"time"

	"github.com/jstrand/planwise/internal/daycontext"
	"github.com/jstrand/planwise/internal/models"
)

// Evaluate checks every rule independently, in the order given (callers
// pass rules ordered by priority_order ascending). A rule triggers when all
// of its conditions hold; an empty condition list never triggers.
func Evaluate(task models.Task, day models.DayContext, start, end time.Time, ruleList []models.Rule) []models.RuleEvaluation {
	evaluations := make([]models.RuleEvaluation, 0, len(ruleList))
	for _, rule := range ruleList {
		triggered := ruleTriggered(rule, task, day, start, end)

		evaluation := models.RuleEvaluation{
			RuleID:    rule.ID,
			RuleName:  rule.Name,
			Action:    rule.Action,
			Triggered: triggered,
			Severity:  "info",
		}
		if triggered {
			evaluation.Message = rule.AlertMessage
			if rule.Action == models.ActionWarn {
				evaluation.Severity = "warning"
			}
		}
		evaluations = append(evaluations, evaluation)
	}
	return evaluations
}

func ruleTriggered(rule models.Rule, task models.Task, day models.DayContext, start, end time.Time) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	for _, cond := range rule.Conditions {
		if !evalCondition(cond, task, day, start, end) {
			return false
		}
	}
	return true
}

// evalCondition dispatches on the condition's source. Unknown sources,
// fields, and operators are vacuously true so stale or hand-edited rule
// data can never hard-fail an evaluation.
func evalCondition(cond models.RuleCondition, task models.Task, day models.DayContext, start, end time.Time) bool {
	switch cond.Source {
	case models.ConditionSourceTaskProperty:
		return evalTaskProperty(cond, task)
	case models.ConditionSourceCalendarDay:
		return evalCalendarDay(cond, day)
	case models.ConditionSourceTimeSlot:
		return evalTimeSlot(cond, day, start, end)
	default:
		return true
	}
}

func evalTaskProperty(cond models.RuleCondition, task models.Task) bool {
	switch cond.Field {
	case "priority":
		return compare(string(task.Priority), cond.Operator, cond.Value)
	case "requires_focus":
		return compare(task.RequiresFocus, cond.Operator, cond.Value)
	case "estimated_duration_minutes":
		return compare(task.EstimatedDurationMinutes, cond.Operator, cond.Value)
	case "category_id":
		categoryID := ""
		if task.CategoryID != nil {
			categoryID = *task.CategoryID
		}
		return compare(categoryID, cond.Operator, cond.Value)
	default:
		return true
	}
}

func evalCalendarDay(cond models.RuleCondition, day models.DayContext) bool {
	switch cond.Field {
	case "work_environment":
		return compare(string(day.WorkEnvironment), cond.Operator, cond.Value)
	case "has_focus_slots":
		return compare(len(day.FocusSlots) > 0, cond.Operator, cond.Value)
	default:
		return true
	}
}

func evalTimeSlot(cond models.RuleCondition, day models.DayContext, start, end time.Time) bool {
	switch cond.Field {
	case "is_focus_time":
		// A boolean expected value asks "does the span touch focus time at
		// all"; a string or list compares against the span's resolved
		// focus level.
		if _, isBool := cond.Value.(bool); isBool {
			return compare(daycontext.SpanOverlapsFocus(day, start, end), cond.Operator, cond.Value)
		}
		level, ok := daycontext.FocusLevelForSpan(day, start, end)
		if !ok {
			return compare(nil, cond.Operator, cond.Value)
		}
		return compare(string(level), cond.Operator, cond.Value)
	case "is_available":
		return compare(daycontext.SpanWithinAvailability(day, start, end), cond.Operator, cond.Value)
	case "hour_of_day":
		return compare(start.Hour(), cond.Operator, cond.Value)
	default:
		return true
	}
}

// compare applies a condition operator to the actual and expected values.
// Numbers compare numerically across int/float representations (JSON
// decodes all numbers as float64); everything else compares by kind.
func compare(actual any, operator string, expected any) bool {
	switch operator {
	case models.OperatorEquals:
		return looseEqual(actual, expected)
	case models.OperatorNotEquals:
		return !looseEqual(actual, expected)
	case models.OperatorGreaterThan:
		return ordered(actual, expected, func(a, b float64) bool { return a > b },
			func(a, b string) bool { return a > b })
	case models.OperatorLessThan:
		return ordered(actual, expected, func(a, b float64) bool { return a < b },
			func(a, b string) bool { return a < b })
	case models.OperatorIn:
		list, ok := expected.([]any)
		if !ok {
			// Membership against a non-list expected value is a defined
			// fallback, not an error.
			return false
		}
		return contains(list, actual)
	case models.OperatorNotIn:
		list, ok := expected.([]any)
		if !ok {
			return true
		}
		return !contains(list, actual)
	default:
		return true
	}
}

func contains(list []any, v any) bool {
	for _, item := range list {
		if looseEqual(v, item) {
			return true
		}
	}
	return false
}

func looseEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

func ordered(a, b any, numCmp func(a, b float64) bool, strCmp func(a, b string) bool) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return numCmp(af, bf)
		}
		return false
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strCmp(as, bs)
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
