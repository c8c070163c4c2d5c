package cli

import (
	"fmt"
	"time"

	"github.com/jstrand/planwise/internal/utils"
)

type ScheduleCmd struct {
	Tasks []string `arg:"" optional:"" help:"Task IDs to place. Defaults to all unscheduled tasks."`
	From  string   `short:"f" help:"First date to consider (YYYY-MM-DD), defaults to today."`
	To    string   `short:"t" help:"Last date to consider (YYYY-MM-DD), defaults to a week out."`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	taskIDs := c.Tasks
	if len(taskIDs) == 0 {
		all, err := ctx.Store.GetAllTasks(userID)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		for _, task := range all {
			if len(task.ScheduledSlots) == 0 {
				taskIDs = append(taskIDs, task.ID)
			}
		}
		if len(taskIDs) == 0 {
			fmt.Println("Nothing to schedule")
			return nil
		}
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

	summary := ctx.Engine.AutoSchedule(userID, taskIDs, from, to)

	for _, placed := range summary.Scheduled {
		fmt.Printf("scheduled %s at %s (score %.2f)\n",
			placed.Title, placed.ScheduledTime.Format("2006-01-02 15:04"), placed.Score)
	}
	for _, failed := range summary.Failed {
		fmt.Printf("failed    %s: %s\n", failed.Title, failed.Reason)
		for _, e := range failed.Errors {
			fmt.Printf("          %s\n", e)
		}
	}
	fmt.Printf("%d/%d tasks scheduled (%.0f%%)\n",
		len(summary.Scheduled), summary.TotalTasks, summary.SuccessRate*100)
	return nil
}
