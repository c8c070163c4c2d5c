package cli

import (
	"errors"
	"fmt"

	"github.com/jstrand/planwise/internal/keyring"
)

// ConfigSetConnectionCmd stores the postgres connection string in the OS
// keyring so it never lands in the config file.
type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	fmt.Println("Stored database connection string in OS keyring")
	return nil
}

type ConfigDeleteConnectionCmd struct{}

func (c *ConfigDeleteConnectionCmd) Run(ctx *Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No connection string stored")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Removed database connection string from OS keyring")
	return nil
}
