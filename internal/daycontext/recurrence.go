package daycontext

import (
	"fmt"
	"time"

	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/utils"
)

// mondayIndex converts a time.Weekday (Sunday=0) to the 0=Monday..6=Sunday
// indexing used by recurrence patterns.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// DateInPattern reports whether a calendar date falls inside a recurrence
// pattern. It returns an error for patterns that cannot be parsed so the
// caller can skip the offending record and keep going.
func DateInPattern(date string, pattern models.RecurrencePattern) (bool, error) {
	target, err := utils.ParseDate(date)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start, err := utils.ParseDate(pattern.StartDate)
	if err != nil {
		return false, fmt.Errorf("invalid pattern start date %q: %w", pattern.StartDate, err)
	}

	if target.Before(start) {
		return false, nil
	}
	if pattern.EndDate != "" {
		end, err := utils.ParseDate(pattern.EndDate)
		if err != nil {
			return false, fmt.Errorf("invalid pattern end date %q: %w", pattern.EndDate, err)
		}
		if target.After(end) {
			return false, nil
		}
	}

	interval := pattern.Interval
	if interval < 1 {
		interval = 1
	}
	daysDiff := int(target.Sub(start).Hours() / 24)

	switch pattern.Type {
	case models.RecurrenceDaily:
		return daysDiff%interval == 0, nil

	case models.RecurrenceWeekly:
		if len(pattern.DaysOfWeek) == 0 {
			return false, nil
		}
		if !containsDay(pattern.DaysOfWeek, mondayIndex(target.Weekday())) {
			return false, nil
		}
		return (daysDiff/7)%interval == 0, nil

	case models.RecurrenceMonthly:
		monthsDiff := (target.Year()-start.Year())*12 + int(target.Month()) - int(start.Month())
		return monthsDiff%interval == 0, nil

	case models.RecurrenceCustom:
		// Custom patterns match on weekday alone; the interval is ignored.
		if len(pattern.DaysOfWeek) == 0 {
			return false, nil
		}
		return containsDay(pattern.DaysOfWeek, mondayIndex(target.Weekday())), nil

	default:
		return false, fmt.Errorf("unknown pattern type %q", pattern.Type)
	}
}
