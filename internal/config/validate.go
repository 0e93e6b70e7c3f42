package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/netupi/netupi/internal/logger"
)

var (
	// Minimum and maximum duration constraints.
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	validSoundExts = []string{".mp3", ".ogg", ".flac", ".wav"}
	validLogLevels = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateDuration(c.Work.Duration, "work"); err != nil {
		return err
	}

	if err := validateDuration(c.Break.Duration, "break"); err != nil {
		return err
	}

	if c.Break.Duration >= c.Work.Duration {
		return errBreakTooLong.Fmt(c.Break.Duration, c.Work.Duration)
	}

	for _, sound := range []string{c.Notifications.Sound, c.Notifications.BreakSound} {
		if err := validateSound(sound); err != nil {
			return err
		}
	}

	if !slices.Contains([]string{DriverBolt, DriverSQLite}, c.Store.Driver) {
		return errUnknownDriver.Fmt(c.Store.Driver)
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !slices.Contains(validLogLevels, level) {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return nil
}

// LoggerOptions returns the logger settings for the log file at path.
func (c *Config) LoggerOptions(path string) logger.Options {
	return logger.Options{
		Path:       path,
		Level:      c.Log.Level,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

func validateDuration(d time.Duration, sessionType string) error {
	if d < minSessionDuration || d > maxSessionDuration {
		return errInvalidDuration.Fmt(
			sessionType,
			minSessionDuration,
			maxSessionDuration,
		)
	}

	return nil
}

// validateSound checks that a sound file exists and can be decoded. An empty
// sound is valid and means no sound.
func validateSound(sound string) error {
	if sound == "" {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(sound))
	if !slices.Contains(validSoundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	if _, err := os.Stat(sound); errors.Is(err, os.ErrNotExist) {
		return errUnknownSound.Fmt(sound)
	}

	return nil
}
