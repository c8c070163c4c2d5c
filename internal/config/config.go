// Package config loads application configuration from a YAML file under
// the user config directory, with sane defaults for everything so a fresh
// install works with no file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jstrand/planwise/internal/constants"
	"github.com/jstrand/planwise/internal/models"
)

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres". For postgres the connection
	// string is read from the OS keyring, never from this file.
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type SlotConfig struct {
	StartTime string `mapstructure:"start_time"`
	EndTime   string `mapstructure:"end_time"`
	Level     string `mapstructure:"focus_level"`
	Status    string `mapstructure:"status"`
}

type DefaultsConfig struct {
	WorkEnvironment   string       `mapstructure:"work_environment"`
	Timezone          string       `mapstructure:"timezone"`
	FocusSlots        []SlotConfig `mapstructure:"focus_slots"`
	AvailabilitySlots []SlotConfig `mapstructure:"availability_slots"`
}

type Config struct {
	UserID   string         `mapstructure:"user_id"`
	Debug    bool           `mapstructure:"debug"`
	Database DatabaseConfig `mapstructure:"database"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// Dir returns the planwise config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	dir := filepath.Join(base, constants.AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("PLANWISE")
	v.AutomaticEnv()

	sys := models.SystemDefaults()
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(dir, constants.AppName+".db"))
	v.SetDefault("debug", false)
	v.SetDefault("defaults.work_environment", string(sys.WorkEnvironment))
	v.SetDefault("defaults.timezone", constants.DefaultTimezone)
	v.SetDefault("defaults.focus_slots", slotMaps(sys))
	v.SetDefault("defaults.availability_slots", availabilityMaps(sys))
	return v
}

func slotMaps(d models.DayDefaults) []map[string]string {
	out := make([]map[string]string, 0, len(d.FocusSlots))
	for _, s := range d.FocusSlots {
		out = append(out, map[string]string{
			"start_time":  s.StartTime,
			"end_time":    s.EndTime,
			"focus_level": string(s.FocusLevel),
		})
	}
	return out
}

func availabilityMaps(d models.DayDefaults) []map[string]string {
	out := make([]map[string]string, 0, len(d.AvailabilitySlots))
	for _, s := range d.AvailabilitySlots {
		out = append(out, map[string]string{
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
			"status":     string(s.Status),
		})
	}
	return out
}

// Load reads the config file from dir, tolerating its absence.
func Load(dir string) (*Config, error) {
	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// SetUserID persists the active user id back to the config file. Used by
// `planwise init` after seeding the local user.
func SetUserID(dir, userID string) error {
	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	v.Set("user_id", userID)
	if err := v.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DayDefaults converts the configured defaults into the immutable value
// the day-context resolver consumes.
func (c *Config) DayDefaults() models.DayDefaults {
	defaults := models.DayDefaults{
		WorkEnvironment: models.WorkEnvironment(c.Defaults.WorkEnvironment),
	}
	for _, s := range c.Defaults.FocusSlots {
		defaults.FocusSlots = append(defaults.FocusSlots, models.FocusSlot{
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			FocusLevel: models.FocusLevel(s.Level),
		})
	}
	for _, s := range c.Defaults.AvailabilitySlots {
		defaults.AvailabilitySlots = append(defaults.AvailabilitySlots, models.AvailabilitySlot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    models.AvailabilityStatus(s.Status),
		})
	}
	return defaults
}
