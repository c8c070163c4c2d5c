// Package cli holds the kong command implementations. Each command is a
// struct with a Run method receiving the shared Context.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jstrand/planwise/internal/config"
	"github.com/jstrand/planwise/internal/engine"
	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/storage"
	"github.com/jstrand/planwise/internal/utils"
)

type Context struct {
	Store     storage.Store
	Engine    *engine.Engine
	Config    *config.Config
	ConfigDir string
}

// userID returns the active user id from config, failing with a hint to
// run init when none is set.
func (ctx *Context) userID() (string, error) {
	if ctx.Config.UserID == "" {
		return "", fmt.Errorf("no user configured, run 'planwise init' first")
	}
	return ctx.Config.UserID, nil
}

// userLocation loads the active user's timezone, defaulting to UTC.
func (ctx *Context) userLocation(userID string) *time.Location {
	user, err := ctx.Store.GetUser(userID)
	if err != nil {
		return time.UTC
	}
	loc, err := utils.LoadLocation(user.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseEnvironment(s string) (models.WorkEnvironment, error) {
	switch models.WorkEnvironment(strings.ToLower(strings.TrimSpace(s))) {
	case models.EnvironmentHome:
		return models.EnvironmentHome, nil
	case models.EnvironmentOffice:
		return models.EnvironmentOffice, nil
	case models.EnvironmentOutdoors:
		return models.EnvironmentOutdoors, nil
	case models.EnvironmentHybrid:
		return models.EnvironmentHybrid, nil
	default:
		return "", fmt.Errorf("invalid work environment: %q (want home|office|outdoors|hybrid)", s)
	}
}

func parseEnvironments(s string) ([]models.WorkEnvironment, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var envs []models.WorkEnvironment
	for _, part := range strings.Split(s, ",") {
		env, err := parseEnvironment(part)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func parsePriority(s string) (models.Priority, error) {
	switch models.Priority(strings.ToLower(strings.TrimSpace(s))) {
	case models.PriorityLow:
		return models.PriorityLow, nil
	case models.PriorityMedium:
		return models.PriorityMedium, nil
	case models.PriorityHigh:
		return models.PriorityHigh, nil
	case models.PriorityUrgent:
		return models.PriorityUrgent, nil
	default:
		return "", fmt.Errorf("invalid priority: %q (want low|medium|high|urgent)", s)
	}
}

// parseFocusSlot parses "HH:MM-HH:MM:level" into a focus slot.
func parseFocusSlot(s string) (models.FocusSlot, error) {
	span, level, err := splitSlotSpec(s)
	if err != nil {
		return models.FocusSlot{}, err
	}
	switch models.FocusLevel(level) {
	case models.FocusHigh, models.FocusMedium, models.FocusLow:
	default:
		return models.FocusSlot{}, fmt.Errorf("invalid focus level in %q (want high|medium|low)", s)
	}
	return models.FocusSlot{StartTime: span[0], EndTime: span[1], FocusLevel: models.FocusLevel(level)}, nil
}

// parseAvailabilitySlot parses "HH:MM-HH:MM:status" into an availability
// slot. The status defaults to available when omitted.
func parseAvailabilitySlot(s string) (models.AvailabilitySlot, error) {
	if !strings.Contains(s, ":available") && !strings.Contains(s, ":busy") && !strings.Contains(s, ":tentative") {
		s += ":available"
	}
	span, status, err := splitSlotSpec(s)
	if err != nil {
		return models.AvailabilitySlot{}, err
	}
	switch models.AvailabilityStatus(status) {
	case models.StatusAvailable, models.StatusBusy, models.StatusTentative:
	default:
		return models.AvailabilitySlot{}, fmt.Errorf("invalid availability status in %q (want available|busy|tentative)", s)
	}
	return models.AvailabilitySlot{StartTime: span[0], EndTime: span[1], Status: models.AvailabilityStatus(status)}, nil
}

// splitSlotSpec splits "HH:MM-HH:MM:tag" into its clock span and tag,
// validating both clocks.
func splitSlotSpec(s string) ([2]string, string, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return [2]string{}, "", fmt.Errorf("invalid slot spec: %q (want HH:MM-HH:MM:tag)", s)
	}
	span, tag := s[:idx], strings.ToLower(strings.TrimSpace(s[idx+1:]))
	parts := strings.Split(span, "-")
	if len(parts) != 2 {
		return [2]string{}, "", fmt.Errorf("invalid time span in %q (want HH:MM-HH:MM)", s)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	startMin, err := utils.ParseClockToMinutes(start)
	if err != nil {
		return [2]string{}, "", fmt.Errorf("invalid start time in %q: %w", s, err)
	}
	endMin, err := utils.ParseClockToMinutes(end)
	if err != nil {
		return [2]string{}, "", fmt.Errorf("invalid end time in %q: %w", s, err)
	}
	if endMin <= startMin {
		return [2]string{}, "", fmt.Errorf("slot end must be after start in %q", s)
	}
	return [2]string{start, end}, tag, nil
}

// parseWeekdays maps comma-separated weekday names or numbers (0=Monday)
// to the indices recurrence patterns use.
func parseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"mon": 0, "monday": 0,
		"tue": 1, "tuesday": 1,
		"wed": 2, "wednesday": 2,
		"thu": 3, "thursday": 3,
		"fri": 4, "friday": 4,
		"sat": 5, "saturday": 5,
		"sun": 6, "sunday": 6,
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		var num int
		if _, err := fmt.Sscanf(part, "%d", &num); err == nil && num >= 0 && num <= 6 {
			days = append(days, num)
			continue
		}
		return nil, fmt.Errorf("invalid weekday: %q", part)
	}
	return days, nil
}

func formatSuggestion(s models.SuggestionSlot) string {
	return fmt.Sprintf("%s - %s  score=%.2f  %s",
		s.StartTime.Format("2006-01-02 15:04"),
		s.EndTime.Format("15:04"),
		s.Score, s.Reason)
}
