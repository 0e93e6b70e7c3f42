package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyWorkDuration         = "work.duration"
	keyBreakDuration        = "break.duration"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationsSound   = "notifications.sound"
	keyBreakSound           = "notifications.break_sound"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyDarkTheme            = "settings.dark_theme"
	keyStoreDriver          = "store.driver"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyLogMaxBackups        = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does not
// exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		c.PathToConfig = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults. Values already present in c,
// such as answers to the first-run prompt, take precedence.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyWorkDuration, "50m")
	v.SetDefault(keyBreakDuration, "10m")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationsSound, "")
	v.SetDefault(keyBreakSound, "")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyStoreDriver, DriverBolt)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 5)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Work.Duration > 0 {
		v.SetDefault(keyWorkDuration, c.Work.Duration.String())
	}

	if c.Break.Duration > 0 {
		v.SetDefault(keyBreakDuration, c.Break.Duration.String())
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	return nil
}
