package cli

import (
	"fmt"
	"time"

	"github.com/jstrand/planwise/internal/utils"
)

type SuggestCmd struct {
	Task string `arg:"" help:"Task ID."`
	From string `short:"f" help:"First date to consider (YYYY-MM-DD), defaults to today."`
	To   string `short:"t" help:"Last date to consider (YYYY-MM-DD), defaults to a week out."`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	from := c.From
	if from == "" {
		from = utils.FormatDate(time.Now())
	}
	to := c.To
	if to == "" {
		start, err := utils.ParseDate(from)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
		to = utils.FormatDate(start.AddDate(0, 0, 6))
	}

	suggestions := ctx.Engine.SuggestSlots(userID, c.Task, from, to)
	if len(suggestions) == 0 {
		fmt.Println("No suitable slots found")
		return nil
	}
	for _, s := range suggestions {
		fmt.Println(formatSuggestion(s))
	}
	return nil
}
