// Package config loads netupi settings from the config file and command-line
// flags.
package config

import (
	"fmt"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Work          SessionConfig      `mapstructure:"work"`
		Break         SessionConfig      `mapstructure:"break"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Store         StoreConfig        `mapstructure:"store"`
		Log           LogConfig          `mapstructure:"log"`
		PathToConfig  string             `mapstructure:"-"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// SessionConfig holds the default length of a work or break session
	SessionConfig struct {
		Duration time.Duration `mapstructure:"duration"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled    bool   `mapstructure:"enabled"`
		Sound      string `mapstructure:"sound"`
		BreakSound string `mapstructure:"break_sound"`
	}

	// SettingsConfig holds general settings
	SettingsConfig struct {
		Cmd            string `mapstructure:"cmd"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
		DarkTheme      bool   `mapstructure:"dark_theme"`
	}

	// StoreConfig selects the persistence backend
	StoreConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Since time.Time
		Task  string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// New creates a new Config and applies options in order
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", errConfigOption, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}

// TimeFormat is the layout used to display clock times.
func (c *Config) TimeFormat() string {
	if c.Settings.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}
