package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/netupi/netupi/internal/clock"
	"github.com/netupi/netupi/internal/config"
	"github.com/netupi/netupi/internal/logger"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/notify"
	"github.com/netupi/netupi/internal/pathutil"
	"github.com/netupi/netupi/internal/tracker"
	"github.com/netupi/netupi/internal/ui"
	"github.com/netupi/netupi/report"
	"github.com/netupi/netupi/store"
	"github.com/netupi/netupi/store/sqlite"
)

// env bundles what a command needs to talk to the tracker.
type env struct {
	cfg    *config.Config
	db     store.DB
	ctrl   *tracker.Controller
	logs   io.Closer
	timers *clock.Scheduler
}

func (r *env) Close() error {
	if r.timers != nil {
		r.timers.Stop()
	}

	err := r.db.Close()

	if r.logs != nil {
		err = errors.Join(err, r.logs.Close())
	}

	return err
}

// loadConfig reads the config file, prompting for the basics on first run,
// then applies command-line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfgPath := pathutil.ConfigFilePath()

	return config.New(
		config.WithPromptConfig(cfgPath),
		config.WithViperConfig(cfgPath),
		config.WithCLIConfig(ctx),
	)
}

// openStore opens the backend named by the config.
func openStore(cfg *config.Config) (store.DB, error) {
	switch cfg.Store.Driver {
	case "", config.DriverBolt:
		return store.NewClient(pathutil.DBFilePath())
	case config.DriverSQLite:
		return sqlite.NewClient(pathutil.SQLiteFilePath())
	default:
		return nil, errUnknownDriver.Fmt(cfg.Store.Driver)
	}
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.Notifications.Enabled {
		return notify.Nop{}
	}

	return &notify.Desktop{
		IconDir: pathutil.Dir(),
		Cmd:     cfg.Settings.Cmd,
	}
}

// setup loads the config, starts logging and builds a controller over the
// configured store.
func setup(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Settings.DarkTheme

	logs, err := logger.Setup(cfg.LoggerOptions(pathutil.LogFilePath()))
	if err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	timers := clock.NewScheduler()

	ctrl, err := tracker.New(
		db,
		clock.System{},
		timers,
		tracker.WithDiagnostics(report.Diagnostic),
		tracker.WithNotifier(newNotifier(cfg)),
		tracker.WithDurations(cfg.Work.Duration, cfg.Break.Duration),
		tracker.WithSounds(cfg.Notifications.Sound, cfg.Notifications.BreakSound),
	)
	if err != nil {
		timers.Stop()
		_ = db.Close()
		_ = logs.Close()

		return nil, err
	}

	slog.Debug(
		"runtime ready",
		slog.String("driver", cfg.Store.Driver),
		slog.String("config", cfg.PathToConfig),
	)

	return &env{
		cfg:    cfg,
		db:     db,
		ctrl:   ctrl,
		logs:   logs,
		timers: timers,
	}, nil
}

// findTask resolves ref to a task by id, then by case-insensitive name.
// Archived tasks only match by id.
func findTask(tasks models.TaskMap, ref string) (models.Task, error) {
	if task, ok := tasks[ref]; ok {
		return task, nil
	}

	var matches []models.Task

	for _, task := range tasks {
		if task.Status == models.Archived {
			continue
		}

		if strings.EqualFold(task.Name, ref) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, errTaskNotFound.Fmt(ref)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, errAmbiguousTask.Fmt(ref, len(matches))
	}
}

// taskArg resolves the first positional argument to a task.
func taskArg(ctx *cli.Context, tasks models.TaskMap) (models.Task, error) {
	ref := strings.TrimSpace(ctx.Args().First())
	if ref == "" {
		return models.Task{}, errMissingArg.Fmt("TASK")
	}

	return findTask(tasks, ref)
}
