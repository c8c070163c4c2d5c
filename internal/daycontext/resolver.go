package daycontext

import (
	"errors"
	"fmt"

	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/storage"
	"github.com/jstrand/planwise/internal/utils"
)

// Source is the slice of the store the resolver reads: recurring day
// settings and one-off daily overrides.
type Source interface {
	// GetDaySettings returns a user's active day settings ordered by
	// creation time ascending.
	GetDaySettings(userID string) ([]models.DaySetting, error)
	// GetCalendarDay returns the override record for a (user, date) pair,
	// or storage.ErrNotFound when none exists.
	GetCalendarDay(userID, date string) (models.CalendarDay, error)
}

// Resolver merges the three layers of calendar-day configuration (system
// defaults, recurring user settings, one-off daily overrides) into a single
// effective day description.
type Resolver struct {
	src      Source
	defaults models.DayDefaults
}

func NewResolver(src Source, defaults models.DayDefaults) *Resolver {
	return &Resolver{src: src, defaults: defaults}
}

// Resolve computes the effective day context for one (user, date) pair.
// Later layers fully replace the prior layer's value for a field: a user
// setting's focus_slots replaces the default list entirely, and a daily
// override replaces everything it carries.
func (r *Resolver) Resolve(userID, date string) (models.DayContext, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return models.DayContext{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	ctx := models.DayContext{
		Date:              date,
		UserID:            userID,
		WorkEnvironment:   r.defaults.WorkEnvironment,
		FocusSlots:        r.defaults.FocusSlots,
		AvailabilitySlots: r.defaults.AvailabilitySlots,
		Source:            models.SourceDefault,
	}

	settings, err := r.src.GetDaySettings(userID)
	if err != nil {
		return models.DayContext{}, fmt.Errorf("loading day settings: %w", err)
	}

	// Settings arrive ordered by creation time, so when several active
	// settings target the same field on the same date the most recently
	// created one wins.
	for _, setting := range settings {
		if !setting.IsActive {
			continue
		}
		match, err := DateInPattern(date, setting.Recurrence)
		if err != nil {
			logger.Warn("Skipping day setting with malformed recurrence pattern",
				"setting_id", setting.ID, "error", err)
			continue
		}
		if !match {
			continue
		}
		applySetting(&ctx, setting)
	}

	override, err := r.src.GetCalendarDay(userID, date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ctx, nil
		}
		return models.DayContext{}, fmt.Errorf("loading calendar day: %w", err)
	}

	ctx.WorkEnvironment = override.WorkEnvironment
	ctx.FocusSlots = override.FocusSlots
	ctx.AvailabilitySlots = override.AvailabilitySlots
	ctx.Source = models.SourceDailyOverride
	id := override.ID
	ctx.CalendarDayID = &id
	createdAt, updatedAt := override.CreatedAt, override.UpdatedAt
	ctx.CreatedAt = &createdAt
	ctx.UpdatedAt = &updatedAt

	return ctx, nil
}

// ResolveRange computes day contexts for every date in the inclusive range.
func (r *Resolver) ResolveRange(userID, startDate, endDate string) ([]models.DayContext, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	var contexts []models.DayContext
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ctx, err := r.Resolve(userID, utils.FormatDate(d))
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, ctx)
	}
	return contexts, nil
}

func applySetting(ctx *models.DayContext, setting models.DaySetting) {
	switch setting.Type {
	case models.SettingWorkEnvironment:
		if setting.Value.WorkEnvironment == "" {
			logger.Warn("Skipping work environment setting with empty value", "setting_id", setting.ID)
			return
		}
		ctx.WorkEnvironment = setting.Value.WorkEnvironment
	case models.SettingFocusSlots:
		ctx.FocusSlots = setting.Value.FocusSlots
	case models.SettingAvailabilitySlots:
		ctx.AvailabilitySlots = setting.Value.AvailabilitySlots
	default:
		logger.Warn("Skipping day setting with unknown type",
			"setting_id", setting.ID, "type", setting.Type)
		return
	}
	ctx.Source = models.SourceUserSettings
}
