package cli

import (
	"fmt"

	"github.com/jstrand/planwise/internal/utils"
)

type ValidateCmd struct {
	Task  string `arg:"" help:"Task ID."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD)." required:""`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	loc := ctx.userLocation(userID)
	start, err := utils.CombineDateAndClock(c.Date, c.Start, loc)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := utils.CombineDateAndClock(c.Date, c.End, loc)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}

	result := ctx.Engine.ValidatePlacement(userID, c.Task, start, end)

	fmt.Printf("Result: %s\n", result.Result)
	for _, reason := range result.BlockReasons {
		fmt.Printf("  blocked: %s\n", reason)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
	for _, eval := range result.RuleEvaluations {
		if !eval.Triggered {
			continue
		}
		fmt.Printf("  rule: %s (%s)\n", eval.RuleName, eval.Action)
	}
	if len(result.Suggestions) > 0 {
		fmt.Println("Alternative slots:")
		for _, s := range result.Suggestions {
			fmt.Printf("  %s\n", formatSuggestion(s))
		}
	}

	return nil
}
