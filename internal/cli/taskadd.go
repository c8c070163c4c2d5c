package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/utils"
)

type TaskAddCmd struct {
	Title        string `arg:"" help:"Task title."`
	Duration     int    `short:"d" help:"Estimated duration in minutes." required:""`
	Priority     string `short:"p" help:"Priority (low|medium|high|urgent)." default:"medium"`
	Deadline     string `help:"Deadline date (YYYY-MM-DD)."`
	Focus        bool   `help:"Task needs a focus slot."`
	Environments string `short:"e" help:"Comma-separated fitting environments. Empty fits anywhere."`
	Description  string `help:"Longer description."`
	Category     string `help:"Category ID."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	priority, err := parsePriority(c.Priority)
	if err != nil {
		return err
	}
	envs, err := parseEnvironments(c.Environments)
	if err != nil {
		return err
	}

	var deadline *time.Time
	if c.Deadline != "" {
		d, err := utils.ParseDateInLocation(c.Deadline, ctx.userLocation(userID))
		if err != nil {
			return fmt.Errorf("invalid deadline: %w", err)
		}
		// End of day so the whole deadline date still counts.
		end := d.AddDate(0, 0, 1).Add(-time.Minute)
		deadline = &end
	}

	var category *string
	if c.Category != "" {
		category = &c.Category
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:                       uuid.New().String(),
		UserID:                   userID,
		Title:                    c.Title,
		Description:              c.Description,
		CategoryID:               category,
		Priority:                 priority,
		EstimatedDurationMinutes: c.Duration,
		Deadline:                 deadline,
		RequiresFocus:            c.Focus,
		FittingEnvironments:      envs,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := ctx.Store.SaveTask(task); err != nil {
		return fmt.Errorf("saving task: %w", err)
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}
