package cli

import "fmt"

type RuleListCmd struct{}

func (c *RuleListCmd) Run(ctx *Context) error {
	userID, err := ctx.userID()
	if err != nil {
		return err
	}

	ruleList, err := ctx.Store.GetRules(userID)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	if len(ruleList) == 0 {
		fmt.Println("No rules")
		return nil
	}

	for _, rule := range ruleList {
		fmt.Printf("[%3d] %-20s %s  (%d conditions, ID: %s)\n",
			rule.PriorityOrder, rule.Action, rule.Name, len(rule.Conditions), rule.ID)
		if rule.AlertMessage != "" {
			fmt.Printf("      message: %s\n", rule.AlertMessage)
		}
	}
	return nil
}
