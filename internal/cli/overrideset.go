package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/storage"
	"github.com/jstrand/planwise/internal/utils"
)

type OverrideSetCmd struct {
	Date         string   `arg:"" help:"Date to override (YYYY-MM-DD)."`
	Environment  string   `short:"e" help:"Work environment for the day." required:""`
	Focus        []string `short:"f" help:"Focus slots as HH:MM-HH:MM:level. Repeatable."`
	Availability []string `short:"a" help:"Availability slots as HH:MM-HH:MM[:status]. Repeatable."`
}

func (c *OverrideSetCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	if _, err := utils.ParseDate(c.Date); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	env, err := parseEnvironment(c.Environment)
	if err != nil {
		return err
	}

	focusSlots := []models.FocusSlot{}
	for _, spec := range c.Focus {
		slot, err := parseFocusSlot(spec)
		if err != nil {
			return err
		}
		focusSlots = append(focusSlots, slot)
	}
	availabilitySlots := []models.AvailabilitySlot{}
	for _, spec := range c.Availability {
		slot, err := parseAvailabilitySlot(spec)
		if err != nil {
			return err
		}
		availabilitySlots = append(availabilitySlots, slot)
	}

	now := time.Now().UTC()
	day := models.CalendarDay{
		ID:                uuid.New().String(),
		UserID:            userID,
		Date:              c.Date,
		WorkEnvironment:   env,
		FocusSlots:        focusSlots,
		AvailabilitySlots: availabilitySlots,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// Updating an existing override keeps its identity.
	if existing, err := ctx.Store.GetCalendarDay(userID, c.Date); err == nil {
		day.ID = existing.ID
		day.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("loading existing override: %w", err)
	}

	if err := ctx.Store.SaveCalendarDay(day); err != nil {
		return fmt.Errorf("saving override: %w", err)
	}

	fmt.Printf("Set override for %s: environment=%s, %d focus slots, %d availability slots\n",
		c.Date, env, len(focusSlots), len(availabilitySlots))
	return nil
}
