package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/jstrand/planwise/internal/constants"
	"github.com/jstrand/planwise/internal/daycontext"
	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/rules"
	"github.com/jstrand/planwise/internal/storage"
	"github.com/jstrand/planwise/internal/utils"
)

// ValidatePlacement decides whether a task may be scheduled in the
// proposed time span. The policy is fail closed: any unexpected internal
// failure is converted to a BLOCKED result rather than escaping to the
// caller.
func (e *Engine) ValidatePlacement(userID, taskID string, start, end time.Time) models.ValidationResult {
	result, err := e.validatePlacement(userID, taskID, start, end)
	if err != nil {
		logger.Error("Placement validation failed", "user_id", userID, "task_id", taskID, "error", err)
		return blockedResult(fmt.Sprintf("Validation error: %v", err))
	}
	return result
}

func (e *Engine) validatePlacement(userID, taskID string, start, end time.Time) (models.ValidationResult, error) {
	task, err := e.store.GetTask(userID, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return blockedResult("Task not found"), nil
	}
	if err != nil {
		return models.ValidationResult{}, err
	}

	day := e.dayContextOrFallback(userID, utils.FormatDate(start))

	warnings := []string{}
	blockReasons := []string{}

	// Environment compatibility: a task that declares fitting environments
	// can only be placed on days set to one of them.
	if len(task.FittingEnvironments) > 0 && !task.FitsEnvironment(day.WorkEnvironment) {
		blockReasons = append(blockReasons, fmt.Sprintf(
			"Task requires environments: %v, but day is set to: %s",
			task.FittingEnvironments, day.WorkEnvironment))
	}

	// Focus requirement is a soft constraint: anything short of a
	// high-focus slot warns but does not block.
	if task.RequiresFocus {
		level, ok := daycontext.FocusLevelForSpan(day, start, end)
		if !ok || level != models.FocusHigh {
			warnings = append(warnings, "Task requires focus but is not within a high-focus slot")
		}
	}

	if !daycontext.SpanWithinAvailability(day, start, end) {
		blockReasons = append(blockReasons, "Proposed time is outside available hours")
	}

	ruleList, err := e.store.GetRules(userID)
	if err != nil {
		return models.ValidationResult{}, err
	}
	evaluations := rules.Evaluate(task, day, start, end, ruleList)

	suggestions := []models.SuggestionSlot{}
	warnedByRule := false
	for _, eval := range evaluations {
		if !eval.Triggered {
			continue
		}
		switch eval.Action {
		case models.ActionBlock:
			blockReasons = append(blockReasons, ruleMessage(eval, "placement blocked by rule"))
		case models.ActionWarn:
			warnings = append(warnings, ruleMessage(eval, "placement flagged by rule"))
			warnedByRule = true
		case models.ActionSuggestAlternative:
			alt, err := e.suggestForTask(task, userID,
				utils.FormatDate(start),
				utils.FormatDate(start.AddDate(0, 0, constants.AlternativeWindowDays-1)))
			if err != nil {
				return models.ValidationResult{}, err
			}
			suggestions = append(suggestions, alt...)
			warnings = append(warnings, ruleMessage(eval, "alternative slots suggested"))
		case models.ActionAllow:
			// No side effect; the evaluation record itself is the output.
		}
	}

	result := models.ValidationResult{
		Warnings:        warnings,
		BlockReasons:    blockReasons,
		Suggestions:     suggestions,
		RuleEvaluations: evaluations,
	}
	switch {
	case len(blockReasons) > 0:
		result.IsValid = false
		result.Result = models.ValidationBlocked
	case len(warnings) > 0 || warnedByRule:
		result.IsValid = true
		result.Result = models.ValidationWarned
	default:
		result.IsValid = true
		result.Result = models.ValidationAllowed
	}
	return result, nil
}

func ruleMessage(eval models.RuleEvaluation, fallback string) string {
	msg := eval.Message
	if msg == "" {
		msg = fallback
	}
	return fmt.Sprintf("%s: %s", eval.RuleName, msg)
}

func blockedResult(reason string) models.ValidationResult {
	return models.ValidationResult{
		IsValid:         false,
		Result:          models.ValidationBlocked,
		Warnings:        []string{},
		BlockReasons:    []string{reason},
		Suggestions:     []models.SuggestionSlot{},
		RuleEvaluations: []models.RuleEvaluation{},
	}
}
