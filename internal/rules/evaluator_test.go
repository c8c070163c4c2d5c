package rules

import (
	"testing"
	"time"

	"github.com/jstrand/planwise/internal/models"
)

func testDay() models.DayContext {
	return models.DayContext{
		Date:            "2025-06-02",
		WorkEnvironment: models.EnvironmentHome,
		FocusSlots: []models.FocusSlot{
			{StartTime: "09:00", EndTime: "11:00", FocusLevel: models.FocusHigh},
		},
		AvailabilitySlots: []models.AvailabilitySlot{
			{StartTime: "09:00", EndTime: "17:00", Status: models.StatusAvailable},
		},
	}
}

func testSpan(startHour, endHour int) (time.Time, time.Time) {
	return time.Date(2025, 6, 2, startHour, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, endHour, 0, 0, 0, time.UTC)
}

func singleRule(conditions []models.RuleCondition, action models.RuleAction) []models.Rule {
	return []models.Rule{{
		ID:         "r1",
		Name:       "test rule",
		Conditions: conditions,
		Action:     action,
		IsActive:   true,
	}}
}

func evalOne(t *testing.T, task models.Task, day models.DayContext, conditions []models.RuleCondition) models.RuleEvaluation {
	t.Helper()
	start, end := testSpan(9, 10)
	evals := Evaluate(task, day, start, end, singleRule(conditions, models.ActionBlock))
	if len(evals) != 1 {
		t.Fatalf("expected 1 evaluation, got %d", len(evals))
	}
	return evals[0]
}

func TestEvaluate_EmptyConditionsNeverTrigger(t *testing.T) {
	eval := evalOne(t, models.Task{}, testDay(), nil)
	if eval.Triggered {
		t.Error("rule with no conditions must not trigger")
	}
}

func TestEvaluate_TaskPropertyConditions(t *testing.T) {
	task := models.Task{
		Priority:                 models.PriorityUrgent,
		RequiresFocus:            true,
		EstimatedDurationMinutes: 90,
	}

	tests := []struct {
		name string
		cond models.RuleCondition
		want bool
	}{
		{
			"priority equals",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorEquals, Value: "urgent"},
			true,
		},
		{
			"priority not equals",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorNotEquals, Value: "low"},
			true,
		},
		{
			"requires focus equals",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "requires_focus", Operator: models.OperatorEquals, Value: true},
			true,
		},
		{
			"duration greater than",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "estimated_duration_minutes", Operator: models.OperatorGreaterThan, Value: float64(60)},
			true,
		},
		{
			"duration less than fails",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "estimated_duration_minutes", Operator: models.OperatorLessThan, Value: float64(60)},
			false,
		},
		{
			"priority in list",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorIn, Value: []any{"high", "urgent"}},
			true,
		},
		{
			"priority not in list",
			models.RuleCondition{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorNotIn, Value: []any{"low", "medium"}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := evalOne(t, task, testDay(), []models.RuleCondition{tt.cond})
			if eval.Triggered != tt.want {
				t.Errorf("Triggered = %v, want %v", eval.Triggered, tt.want)
			}
		})
	}
}

func TestEvaluate_CategoryIDNilComparesAsEmpty(t *testing.T) {
	cond := models.RuleCondition{
		Source:   models.ConditionSourceTaskProperty,
		Field:    "category_id",
		Operator: models.OperatorEquals,
		Value:    "",
	}
	eval := evalOne(t, models.Task{}, testDay(), []models.RuleCondition{cond})
	if !eval.Triggered {
		t.Error("nil category should compare equal to empty string")
	}
}

func TestEvaluate_CalendarDayConditions(t *testing.T) {
	day := testDay()
	day.WorkEnvironment = models.EnvironmentOffice

	cond := models.RuleCondition{
		Source:   models.ConditionSourceCalendarDay,
		Field:    "work_environment",
		Operator: models.OperatorEquals,
		Value:    "office",
	}
	if eval := evalOne(t, models.Task{}, day, []models.RuleCondition{cond}); !eval.Triggered {
		t.Error("work_environment equals office should trigger")
	}

	cond = models.RuleCondition{
		Source:   models.ConditionSourceCalendarDay,
		Field:    "has_focus_slots",
		Operator: models.OperatorEquals,
		Value:    true,
	}
	if eval := evalOne(t, models.Task{}, day, []models.RuleCondition{cond}); !eval.Triggered {
		t.Error("has_focus_slots should be true for a day with focus slots")
	}
}

func TestEvaluate_TimeSlotConditions(t *testing.T) {
	day := testDay()

	t.Run("is_focus_time with bool asks about overlap", func(t *testing.T) {
		cond := models.RuleCondition{
			Source:   models.ConditionSourceTimeSlot,
			Field:    "is_focus_time",
			Operator: models.OperatorEquals,
			Value:    true,
		}
		if eval := evalOne(t, models.Task{}, day, []models.RuleCondition{cond}); !eval.Triggered {
			t.Error("09:00-10:00 overlaps the focus slot")
		}
	})

	t.Run("is_focus_time with string compares the level", func(t *testing.T) {
		cond := models.RuleCondition{
			Source:   models.ConditionSourceTimeSlot,
			Field:    "is_focus_time",
			Operator: models.OperatorEquals,
			Value:    "high",
		}
		if eval := evalOne(t, models.Task{}, day, []models.RuleCondition{cond}); !eval.Triggered {
			t.Error("the 09:00-10:00 span resolves to the high focus slot")
		}
	})

	t.Run("hour_of_day less than", func(t *testing.T) {
		cond := models.RuleCondition{
			Source:   models.ConditionSourceTimeSlot,
			Field:    "hour_of_day",
			Operator: models.OperatorLessThan,
			Value:    float64(12),
		}
		if eval := evalOne(t, models.Task{}, day, []models.RuleCondition{cond}); !eval.Triggered {
			t.Error("a 09:00 start is before noon")
		}
	})

	t.Run("is_available", func(t *testing.T) {
		cond := models.RuleCondition{
			Source:   models.ConditionSourceTimeSlot,
			Field:    "is_available",
			Operator: models.OperatorEquals,
			Value:    true,
		}
		if eval := evalOne(t, models.Task{}, day, []models.RuleCondition{cond}); !eval.Triggered {
			t.Error("09:00-10:00 lies inside the available slot")
		}
	})
}

func TestEvaluate_AllConditionsMustHold(t *testing.T) {
	task := models.Task{Priority: models.PriorityUrgent}
	conditions := []models.RuleCondition{
		{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorEquals, Value: "urgent"},
		{Source: models.ConditionSourceCalendarDay, Field: "work_environment", Operator: models.OperatorEquals, Value: "office"},
	}
	// Day is home, so the second condition fails.
	eval := evalOne(t, task, testDay(), conditions)
	if eval.Triggered {
		t.Error("rule must not trigger when any condition fails")
	}
}

func TestEvaluate_UnknownsAreVacuouslyTrue(t *testing.T) {
	conditions := []models.RuleCondition{
		{Source: "astrology", Field: "moon_phase", Operator: models.OperatorEquals, Value: "full"},
		{Source: models.ConditionSourceTaskProperty, Field: "mystery_field", Operator: models.OperatorEquals, Value: 1},
		{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: "resembles", Value: "urgent"},
	}
	eval := evalOne(t, models.Task{}, testDay(), conditions)
	if !eval.Triggered {
		t.Error("unknown sources, fields, and operators should not veto a rule")
	}
}

func TestEvaluate_MembershipAgainstNonList(t *testing.T) {
	inCond := models.RuleCondition{
		Source: models.ConditionSourceTaskProperty, Field: "priority",
		Operator: models.OperatorIn, Value: "urgent",
	}
	if eval := evalOne(t, models.Task{Priority: models.PriorityUrgent}, testDay(), []models.RuleCondition{inCond}); eval.Triggered {
		t.Error("'in' against a non-list expected value must be false")
	}

	notInCond := models.RuleCondition{
		Source: models.ConditionSourceTaskProperty, Field: "priority",
		Operator: models.OperatorNotIn, Value: "urgent",
	}
	if eval := evalOne(t, models.Task{Priority: models.PriorityUrgent}, testDay(), []models.RuleCondition{notInCond}); !eval.Triggered {
		t.Error("'not_in' against a non-list expected value must be true")
	}
}

func TestEvaluate_SeverityAndMessage(t *testing.T) {
	start, end := testSpan(9, 10)
	task := models.Task{Priority: models.PriorityUrgent}
	ruleList := []models.Rule{
		{
			ID:   "warn-rule",
			Name: "warn on urgent",
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorEquals, Value: "urgent"},
			},
			Action:       models.ActionWarn,
			AlertMessage: "careful now",
		},
		{
			ID:   "untriggered",
			Name: "never fires",
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorEquals, Value: "low"},
			},
			Action:       models.ActionBlock,
			AlertMessage: "should not appear",
		},
	}

	evals := Evaluate(task, testDay(), start, end, ruleList)
	if len(evals) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(evals))
	}

	warn := evals[0]
	if !warn.Triggered || warn.Severity != "warning" || warn.Message != "careful now" {
		t.Errorf("unexpected warn evaluation: %+v", warn)
	}

	quiet := evals[1]
	if quiet.Triggered || quiet.Severity != "info" || quiet.Message != "" {
		t.Errorf("untriggered rule should stay info with no message: %+v", quiet)
	}
}

func TestEvaluate_BlockHighPriorityOutsideFocus(t *testing.T) {
	task := models.Task{Priority: models.PriorityHigh}
	day := testDay()
	ruleList := singleRule([]models.RuleCondition{
		{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorEquals, Value: "high"},
		{Source: models.ConditionSourceTimeSlot, Field: "is_focus_time", Operator: models.OperatorEquals, Value: false},
	}, models.ActionBlock)

	// 12:00-13:00 touches no focus slot.
	outside := Evaluate(task, day,
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC), ruleList)
	if !outside[0].Triggered {
		t.Error("high-priority task outside focus time should trigger the block rule")
	}

	// 09:00-10:00 overlaps the high focus slot.
	inside := Evaluate(task, day,
		time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), ruleList)
	if inside[0].Triggered {
		t.Error("the same task inside focus time should not trigger the rule")
	}
}

func TestEvaluate_NumericCoercion(t *testing.T) {
	task := models.Task{EstimatedDurationMinutes: 60}
	// JSON decodes numbers as float64; the int field must still match.
	cond := models.RuleCondition{
		Source: models.ConditionSourceTaskProperty, Field: "estimated_duration_minutes",
		Operator: models.OperatorEquals, Value: float64(60),
	}
	if eval := evalOne(t, task, testDay(), []models.RuleCondition{cond}); !eval.Triggered {
		t.Error("int 60 should equal float64 60")
	}
}
