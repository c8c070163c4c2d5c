package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jstrand/planwise/internal/config"
	"github.com/jstrand/planwise/internal/constants"
	"github.com/jstrand/planwise/internal/models"
)

type InitCmd struct {
	Username    string `short:"u" help:"Username for the local profile." default:"me"`
	Environment string `short:"e" help:"Default work environment (home|office|outdoors|hybrid)." default:"home"`
	Timezone    string `short:"t" help:"IANA timezone name." default:"UTC"`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// Re-running init keeps the existing user.
	if ctx.Config.UserID != "" {
		if user, err := ctx.Store.GetUser(ctx.Config.UserID); err == nil {
			fmt.Printf("Already initialized for user %s (ID: %s)\n", user.Username, user.ID)
			return nil
		}
	}

	env, err := parseEnvironment(c.Environment)
	if err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:                     uuid.New().String(),
		Username:               c.Username,
		DefaultWorkEnvironment: env,
		Timezone:               c.Timezone,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := ctx.Store.SaveUser(user); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	if err := config.SetUserID(ctx.ConfigDir, user.ID); err != nil {
		return fmt.Errorf("persisting user id: %w", err)
	}

	fmt.Printf("Initialized %s storage for user %s (ID: %s)\n", constants.AppName, user.Username, user.ID)
	return nil
}
