package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/utils"
)

type SettingAddCmd struct {
	Type         string   `arg:"" help:"Setting type (work_environment|focus_slots|availability_slots)."`
	Recurrence   string   `short:"r" help:"Recurrence type (daily|weekly|monthly|custom)." default:"daily"`
	Weekdays     string   `short:"w" help:"Comma-separated weekdays for weekly/custom recurrence."`
	Interval     int      `short:"i" help:"Recurrence interval." default:"1"`
	StartDate    string   `short:"s" help:"First date the setting applies (YYYY-MM-DD), defaults to today."`
	EndDate      string   `help:"Last date the setting applies (YYYY-MM-DD)."`
	Environment  string   `short:"e" help:"Work environment value (for work_environment settings)."`
	Focus        []string `short:"f" help:"Focus slots as HH:MM-HH:MM:level (for focus_slots settings). Repeatable."`
	Availability []string `short:"a" help:"Availability slots as HH:MM-HH:MM[:status] (for availability_slots settings). Repeatable."`
}

func (c *SettingAddCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	var settingType models.SettingType
	var value models.SettingValue
	switch models.SettingType(c.Type) {
	case models.SettingWorkEnvironment:
		settingType = models.SettingWorkEnvironment
		env, err := parseEnvironment(c.Environment)
		if err != nil {
			return err
		}
		value.WorkEnvironment = env
	case models.SettingFocusSlots:
		settingType = models.SettingFocusSlots
		if len(c.Focus) == 0 {
			return fmt.Errorf("focus_slots settings need at least one --focus slot")
		}
		for _, spec := range c.Focus {
			slot, err := parseFocusSlot(spec)
			if err != nil {
				return err
			}
			value.FocusSlots = append(value.FocusSlots, slot)
		}
	case models.SettingAvailabilitySlots:
		settingType = models.SettingAvailabilitySlots
		if len(c.Availability) == 0 {
			return fmt.Errorf("availability_slots settings need at least one --availability slot")
		}
		for _, spec := range c.Availability {
			slot, err := parseAvailabilitySlot(spec)
			if err != nil {
				return err
			}
			value.AvailabilitySlots = append(value.AvailabilitySlots, slot)
		}
	default:
		return fmt.Errorf("invalid setting type: %q", c.Type)
	}

	startDate := c.StartDate
	if startDate == "" {
		startDate = utils.FormatDate(time.Now())
	}
	if _, err := utils.ParseDate(startDate); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if c.EndDate != "" {
		if _, err := utils.ParseDate(c.EndDate); err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	pattern := models.RecurrencePattern{
		Type:      models.RecurrenceType(c.Recurrence),
		StartDate: startDate,
		EndDate:   c.EndDate,
		Interval:  c.Interval,
	}
	switch pattern.Type {
	case models.RecurrenceDaily, models.RecurrenceMonthly:
	case models.RecurrenceWeekly, models.RecurrenceCustom:
		if c.Weekdays == "" {
			return fmt.Errorf("%s recurrence needs --weekdays", pattern.Type)
		}
		days, err := parseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		pattern.DaysOfWeek = days
	default:
		return fmt.Errorf("invalid recurrence type: %q", c.Recurrence)
	}

	now := time.Now().UTC()
	setting := models.DaySetting{
		ID:         uuid.New().String(),
		UserID:     userID,
		Type:       settingType,
		Value:      value,
		Recurrence: pattern,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := ctx.Store.SaveDaySetting(setting); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}

	fmt.Printf("Added %s setting (ID: %s)\n", settingType, setting.ID)
	return nil
}
