package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jstrand/planwise/internal/constants"
	"github.com/jstrand/planwise/internal/daycontext"
	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/storage"
	"github.com/jstrand/planwise/internal/utils"
)

// SuggestSlots scans the inclusive date range and returns up to five
// scored candidate slots for the task, best first. Internal failures
// yield an empty list rather than an error escaping the core.
func (e *Engine) SuggestSlots(userID, taskID, startDate, endDate string) []models.SuggestionSlot {
	suggestions, err := e.suggestSlots(userID, taskID, startDate, endDate)
	if err != nil {
		logger.Error("Slot suggestion failed", "user_id", userID, "task_id", taskID, "error", err)
		return []models.SuggestionSlot{}
	}
	return suggestions
}

func (e *Engine) suggestSlots(userID, taskID, startDate, endDate string) ([]models.SuggestionSlot, error) {
	task, err := e.store.GetTask(userID, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.SuggestionSlot{}, nil
	}
	if err != nil {
		return nil, err
	}
	return e.suggestForTask(task, userID, startDate, endDate)
}

func (e *Engine) suggestForTask(task models.Task, userID, startDate, endDate string) ([]models.SuggestionSlot, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	loc := e.userLocation(userID)

	suggestions := []models.SuggestionSlot{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := utils.FormatDate(d)
		day := e.dayContextOrFallback(userID, date)
		suggestions = append(suggestions, generateDaySuggestions(task, day, date, loc)...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > constants.MaxSuggestions {
		suggestions = suggestions[:constants.MaxSuggestions]
	}
	return suggestions, nil
}

// generateDaySuggestions produces candidate slots for one day. The task is
// placed at the front of each window that is long enough; the window
// itself (not the trimmed placement) is what gets scored.
func generateDaySuggestions(task models.Task, day models.DayContext, date string, loc *time.Location) []models.SuggestionSlot {
	suggestions := []models.SuggestionSlot{}

	// Days in an incompatible environment yield no candidates at all.
	if len(task.FittingEnvironments) > 0 && !task.FitsEnvironment(day.WorkEnvironment) {
		return suggestions
	}

	duration := time.Duration(task.EstimatedDurationMinutes) * time.Minute

	if task.RequiresFocus {
		for _, slot := range day.FocusSlots {
			candidate, ok := candidateFromWindow(task, day, date, slot.StartTime, slot.EndTime, duration, loc,
				fmt.Sprintf("Focus time slot (%s-%s)", slot.StartTime, slot.EndTime))
			if ok {
				suggestions = append(suggestions, candidate)
			}
		}
	}

	if len(day.AvailabilitySlots) > 0 {
		for _, slot := range day.AvailabilitySlots {
			if slot.Status != models.StatusAvailable {
				continue
			}
			candidate, ok := candidateFromWindow(task, day, date, slot.StartTime, slot.EndTime, duration, loc,
				fmt.Sprintf("Available time (%s-%s)", slot.StartTime, slot.EndTime))
			if ok {
				suggestions = append(suggestions, candidate)
			}
		}
	} else {
		// No availability slots at all: fall back to business hours.
		candidate, ok := candidateFromWindow(task, day, date,
			constants.DefaultBusinessStart, constants.DefaultBusinessEnd, duration, loc,
			"Default business hours (9 AM - 5 PM)")
		if ok {
			candidate.CalendarDayID = nil
			suggestions = append(suggestions, candidate)
		}
	}

	return suggestions
}

func candidateFromWindow(task models.Task, day models.DayContext, date, startClock, endClock string, duration time.Duration, loc *time.Location, reason string) (models.SuggestionSlot, bool) {
	windowStart, err := utils.CombineDateAndClock(date, startClock, loc)
	if err != nil {
		logger.Warn("Skipping slot with malformed start time", "date", date, "start", startClock, "error", err)
		return models.SuggestionSlot{}, false
	}
	windowEnd, err := utils.CombineDateAndClock(date, endClock, loc)
	if err != nil {
		logger.Warn("Skipping slot with malformed end time", "date", date, "end", endClock, "error", err)
		return models.SuggestionSlot{}, false
	}
	if windowEnd.Sub(windowStart) < duration {
		return models.SuggestionSlot{}, false
	}
	return models.SuggestionSlot{
		StartTime:     windowStart,
		EndTime:       windowStart.Add(duration),
		Score:         scoreWindow(task, day, windowStart, windowEnd),
		Reason:        reason,
		CalendarDayID: day.CalendarDayID,
	}, true
}

// scoreWindow rates a candidate window in [0,1]. Base 0.5, plus bonuses
// for focus fit, environment match, priority, and deadline proximity,
// capped at 1.0.
func scoreWindow(task models.Task, day models.DayContext, windowStart, windowEnd time.Time) float64 {
	score := 0.5

	if task.RequiresFocus && daycontext.SpanWithinFocus(day, windowStart, windowEnd) {
		score += 0.3
	}

	if len(task.FittingEnvironments) > 0 && task.FitsEnvironment(day.WorkEnvironment) {
		score += 0.2
	}

	switch task.Priority {
	case models.PriorityUrgent:
		score += 0.2
	case models.PriorityHigh:
		score += 0.1
	}

	if task.Deadline != nil {
		daysUntil := int(math.Floor(task.Deadline.Sub(windowStart).Hours() / 24))
		if daysUntil <= 1 {
			score += 0.2
		} else if daysUntil <= 3 {
			score += 0.1
		}
	}

	return math.Min(score, 1.0)
}
