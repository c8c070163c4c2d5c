package cli

import (
	"fmt"
	"time"

	"github.com/jstrand/planwise/internal/utils"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD), defaults to today."`
	End  string `short:"e" help:"End date for a range (YYYY-MM-DD), inclusive."`
}

func (c *DayCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = utils.FormatDate(time.Now())
	}
	end := c.End
	if end == "" {
		end = date
	}

	contexts, err := ctx.Engine.DayContexts(userID, date, end)
	if err != nil {
		return fmt.Errorf("resolving day context: %w", err)
	}

	for i, day := range contexts {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s  environment=%s  source=%s\n", day.Date, day.WorkEnvironment, day.Source)
		for _, slot := range day.FocusSlots {
			fmt.Printf("  focus        %s-%s  %s\n", slot.StartTime, slot.EndTime, slot.FocusLevel)
		}
		for _, slot := range day.AvailabilitySlots {
			fmt.Printf("  availability %s-%s  %s\n", slot.StartTime, slot.EndTime, slot.Status)
		}
	}
	return nil
}
