package cli

import (
	"fmt"
	"sort"
)

type TaskListCmd struct {
	Unscheduled bool `short:"u" help:"Only show tasks without a scheduled slot."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks(userID)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
	})

	count := 0
	for _, task := range tasks {
		if c.Unscheduled && len(task.ScheduledSlots) > 0 {
			continue
		}
		count++
		line := fmt.Sprintf("%-8s %3dm  %s", task.Priority, task.EstimatedDurationMinutes, task.Title)
		if task.Deadline != nil {
			line += fmt.Sprintf("  due %s", task.Deadline.Format("2006-01-02"))
		}
		if len(task.ScheduledSlots) > 0 {
			slot := task.ScheduledSlots[0]
			line += fmt.Sprintf("  scheduled %s", slot.StartTime.Format("2006-01-02 15:04"))
		}
		fmt.Printf("%s  (ID: %s)\n", line, task.ID)
	}
	if count == 0 {
		fmt.Println("No tasks")
	}
	return nil
}
