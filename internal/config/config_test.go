package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netupi/netupi/internal/config"
	"github.com/netupi/netupi/internal/testutil"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig(path string) *config.Config {
	return &config.Config{
		Work:  config.SessionConfig{Duration: 50 * time.Minute},
		Break: config.SessionConfig{Duration: 10 * time.Minute},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Settings: config.SettingsConfig{DarkTheme: true},
		Store: config.StoreConfig{Driver: config.DriverBolt},
		Log: config.LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		PathToConfig: path,
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(configPath), cfg)
	assert.FileExists(t, configPath)

	// reading the written defaults back yields the same config
	again, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := testutil.CopyFile("testdata/modified_config.yml", configPath)
	require.NoError(t, err)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	want := &config.Config{
		Work:  config.SessionConfig{Duration: 45 * time.Minute},
		Break: config.SessionConfig{Duration: 15 * time.Minute},
		Settings: config.SettingsConfig{
			Cmd:            "notify-send done",
			TwentyFourHour: true,
		},
		Store: config.StoreConfig{Driver: config.DriverSQLite},
		Log: config.LogConfig{
			Level:      "debug",
			MaxSizeMB:  10,
			MaxBackups: 1,
		},
		PathToConfig: configPath,
	}

	assert.Equal(t, want, cfg)
	assert.Equal(t, "15:04", cfg.TimeFormat())
}

func TestValidate(t *testing.T) {
	sound := filepath.Join(t.TempDir(), "bell.ogg")
	require.NoError(t, os.WriteFile(sound, []byte("OggS"), 0o600))

	cases := []struct {
		name    string
		modify  func(c *config.Config)
		wantErr bool
	}{
		{"defaults", func(*config.Config) {}, false},
		{"existing sound", func(c *config.Config) { c.Notifications.Sound = sound }, false},
		{"zero work", func(c *config.Config) { c.Work.Duration = 0 }, true},
		{"break longer than work", func(c *config.Config) { c.Break.Duration = time.Hour }, true},
		{"too long", func(c *config.Config) { c.Work.Duration = 13 * time.Hour }, true},
		{"unknown driver", func(c *config.Config) { c.Store.Driver = "postgres" }, true},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }, true},
		{"bad sound format", func(c *config.Config) { c.Notifications.Sound = "bell.aiff" }, true},
		{"missing sound", func(c *config.Config) { c.Notifications.BreakSound = "/nowhere/bell.ogg" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig("")
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}
