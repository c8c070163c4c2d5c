package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jstrand/planwise/internal/constants"
	"github.com/jstrand/planwise/internal/models"
)

type RuleAddCmd struct {
	Name       string `arg:"" help:"Rule name."`
	Action     string `short:"a" help:"Action when triggered (allow|block|warn|suggest_alternative)." required:""`
	Conditions string `short:"c" help:"JSON array of conditions, e.g. '[{\"source\":\"task_property\",\"field\":\"priority\",\"operator\":\"equals\",\"value\":\"urgent\"}]'." required:""`
	Message    string `short:"m" help:"Alert message shown when the rule fires."`
	Order      int    `short:"o" help:"Evaluation order, lower runs first." default:"100"`
	Describe   string `help:"Rule description."`
}

func (c *RuleAddCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	var action models.RuleAction
	switch models.RuleAction(c.Action) {
	case models.ActionAllow, models.ActionBlock, models.ActionWarn, models.ActionSuggestAlternative:
		action = models.RuleAction(c.Action)
	default:
		return fmt.Errorf("invalid action: %q (want allow|block|warn|suggest_alternative)", c.Action)
	}

	var conditions []models.RuleCondition
	if err := json.Unmarshal([]byte(c.Conditions), &conditions); err != nil {
		return fmt.Errorf("parsing conditions: %w", err)
	}
	for i, cond := range conditions {
		if cond.Source == "" || cond.Field == "" || cond.Operator == "" {
			return fmt.Errorf("condition %d is missing source, field, or operator", i)
		}
	}

	order := c.Order
	if order == 0 {
		order = constants.DefaultRulePriorityOrder
	}

	now := time.Now().UTC()
	rule := models.Rule{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          c.Name,
		Description:   c.Describe,
		Conditions:    conditions,
		Action:        action,
		AlertMessage:  c.Message,
		PriorityOrder: order,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := ctx.Store.SaveRule(rule); err != nil {
		return fmt.Errorf("saving rule: %w", err)
	}

	fmt.Printf("Added rule: %s (ID: %s)\n", rule.Name, rule.ID)
	return nil
}
