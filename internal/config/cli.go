package config

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/netupi/netupi/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Since         string
	Work          string
	Break         string
	Sound         string
	BreakSound    string
	SessionCmd    string
	Driver        string
	Task          string
	DisableNotify bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:          ctx.String("work"),
			Break:         ctx.String("break"),
			Sound:         ctx.String("sound"),
			BreakSound:    ctx.String("break-sound"),
			SessionCmd:    ctx.String("session-cmd"),
			Driver:        ctx.String("driver"),
			Since:         ctx.String("since"),
			Task:          ctx.String("task"),
			DisableNotify: ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return fmt.Errorf("applying CLI durations: %w", err)
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	applyCLISounds(c, opts)

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.Driver != "" {
		c.Store.Driver = opts.Driver
	}

	c.CLI.Task = opts.Task

	if opts.Since != "" {
		since, err := timeutil.FromStr(opts.Since, now)
		if err != nil {
			return fmt.Errorf("invalid since time: %w", err)
		}

		c.CLI.Since = since
	}

	return nil
}

// applyCLIDurations handles parsing and applying duration settings from CLI.
func applyCLIDurations(c *Config, opts CLIOptions) error {
	if opts.Work != "" {
		dur, err := parseDuration(opts.Work)
		if err != nil {
			return errInvalidCLIDuration.Fmt("work", err)
		}

		c.Work.Duration = dur
	}

	if opts.Break != "" {
		dur, err := parseDuration(opts.Break)
		if err != nil {
			return errInvalidCLIDuration.Fmt("break", err)
		}

		c.Break.Duration = dur
	}

	return nil
}

// applyCLISounds handles sound-related CLI options. "off" disables a sound.
func applyCLISounds(c *Config, opts CLIOptions) {
	if opts.Sound != "" {
		c.Notifications.Sound = opts.Sound
		if opts.Sound == "off" {
			c.Notifications.Sound = ""
		}
	}

	if opts.BreakSound != "" {
		c.Notifications.BreakSound = opts.BreakSound
		if opts.BreakSound == "off" {
			c.Notifications.BreakSound = ""
		}
	}
}

// parseDuration accepts Go duration strings or a bare number of minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
