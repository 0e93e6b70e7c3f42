package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/netupi/netupi/internal/aggregate"
	"github.com/netupi/netupi/internal/clock"
	"github.com/netupi/netupi/internal/importer"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/pathutil"
	"github.com/netupi/netupi/internal/timeutil"
	"github.com/netupi/netupi/internal/tracker"
	"github.com/netupi/netupi/internal/ui"
	"github.com/netupi/netupi/report"
	"github.com/netupi/netupi/store"
)

const (
	envNoColor       = "NO_COLOR"
	envNetupiNoColor = "NETUPI_NO_COLOR"
)

// statusStaleAfter is how old a status file may be before it is ignored when
// the database lock cannot tell whether a session is running.
const statusStaleAfter = 5 * time.Second

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// trackAction starts a session on the task named by the first argument, or
// one picked interactively, and runs the timer view until the user quits.
func trackAction(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	tasks := r.ctrl.Model().Tasks

	var task models.Task

	if ctx.Args().Present() {
		task, err = taskArg(ctx, tasks)
	} else {
		task, err = pickTask(tasks)
	}

	if err != nil {
		return err
	}

	if err := r.ctrl.Start(task.ID); err != nil {
		return err
	}

	m := newTrackModel(
		r.ctrl,
		clock.System{},
		r.timers.C(),
		pathutil.StatusFilePath(),
		r.cfg.TimeFormat(),
	)

	_, err = tea.NewProgram(m).Run()

	// the view stops the session on quit, this covers a crashed program
	if r.ctrl.Context().State.Phase != tracker.Inactive {
		err = errors.Join(err, r.ctrl.Stop())
	}

	_ = removeStatusFile(pathutil.StatusFilePath())

	return err
}

func taskAddAction(ctx *cli.Context) error {
	name := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if name == "" {
		return errMissingArg.Fmt("NAME")
	}

	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	task := models.NewTask(name)
	task.Tags = ctx.StringSlice("tag")
	task.Priority = ctx.Int("priority")

	if err := r.ctrl.AddTask(task); err != nil {
		return err
	}

	report.Success("Created task '%s' (%s)", task.Name, task.ID)

	return nil
}

func taskListAction(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	tasks := selectTasks(r.ctrl.Model().Tasks, ctx.Bool("all"), ctx.String("tag"))
	if len(tasks) == 0 {
		pterm.Info.Println(noTasksMsg)
		return nil
	}

	now := time.Now()

	return ui.PrintTable(taskTable(tasks, func(id string) aggregate.Durations {
		return r.ctrl.Durations(id, now)
	}), os.Stdout)
}

// setTaskStatus runs fn against the task named by the first argument.
func setTaskStatus(
	ctx *cli.Context,
	fn func(*tracker.Controller, string) error,
	verb string,
) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	task, err := taskArg(ctx, r.ctrl.Model().Tasks)
	if err != nil {
		return err
	}

	if err := fn(r.ctrl, task.ID); err != nil {
		return err
	}

	report.Success("Task '%s' %s", task.Name, verb)

	return nil
}

func taskDoneAction(ctx *cli.Context) error {
	return setTaskStatus(ctx, (*tracker.Controller).MarkCompleted, "marked as completed")
}

func taskArchiveAction(ctx *cli.Context) error {
	return setTaskStatus(ctx, (*tracker.Controller).Archive, "archived")
}

// statsAction prints the totals for each task since the start of the day,
// week, month and year.
func statsAction(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	now := time.Now()
	tasks := selectTasks(r.ctrl.Model().Tasks, true, "")
	all := r.ctrl.DurationsAll(now)

	if ref := ctx.String("task"); ref != "" {
		task, err := findTask(r.ctrl.Model().Tasks, ref)
		if err != nil {
			return err
		}

		tasks = []models.Task{task}
		all = r.ctrl.Durations(task.ID, now)
	}

	return ui.PrintTable(statsTable(tasks, func(id string) aggregate.Durations {
		return r.ctrl.Durations(id, now)
	}, all), os.Stdout)
}

func todayAction(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	d := r.ctrl.DurationsAll(time.Now())

	pterm.Printfln("Today: %s", timeutil.FormatDuration(d.Day))

	return nil
}

// logAction lists time records, killed ones included.
func logAction(ctx *cli.Context) error {
	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	model := r.ctrl.Model()

	var taskID string

	if ref := ctx.String("task"); ref != "" {
		task, err := findTask(model.Tasks, ref)
		if err != nil {
			return err
		}

		taskID = task.ID
	}

	since := r.cfg.CLI.Since
	if since.IsZero() {
		since = timeutil.Epoch
	}

	rows := logRows(model, since, taskID)

	if ctx.Bool("plain") {
		return writeLogPlain(os.Stdout, rows, r.cfg.TimeFormat(), time.Local)
	}

	if len(rows) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	return printLogTable(os.Stdout, rows, r.cfg.TimeFormat(), time.Local)
}

// parseKey accepts the keys printed by the log command as well as RFC 3339
// timestamps.
func parseKey(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := timeutil.FromKey([]byte(s)); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errInvalidKey.Fmt(s).Wrap(err)
	}

	return t, nil
}

func recordAction(
	ctx *cli.Context,
	fn func(*tracker.Controller, time.Time) (models.TimeRecord, error),
	verb string,
) error {
	if !ctx.Args().Present() {
		return errMissingArg.Fmt("KEY")
	}

	from, err := parseKey(ctx.Args().First())
	if err != nil {
		return err
	}

	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	rec, err := fn(r.ctrl, from)
	if err != nil {
		return err
	}

	task, _ := r.ctrl.Task(rec.TaskID)

	report.Success(
		"%s %s of '%s' starting %s",
		verb,
		timeutil.FormatDuration(rec.Duration()),
		task.Name,
		rec.From.Local().Format(dateFormat+" "+r.cfg.TimeFormat()),
	)

	return nil
}

func killAction(ctx *cli.Context) error {
	return recordAction(ctx, (*tracker.Controller).Kill, "Discarded")
}

func restoreAction(ctx *cli.Context) error {
	return recordAction(ctx, (*tracker.Controller).Restore, "Restored")
}

// importAction loads records from a CSV file. Rows that cannot be added are
// reported without stopping the import.
func importAction(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return errMissingArg.Fmt("FILE")
	}

	f, err := os.Open(ctx.Args().First())
	if err != nil {
		return err
	}

	defer f.Close()

	r, err := setup(ctx)
	if err != nil {
		return err
	}

	defer r.Close()

	created, recs, err := importer.Parse(f, r.ctrl.Model().Tasks)
	if err != nil {
		return err
	}

	n, err := r.ctrl.Import(created, recs)
	if err != nil {
		report.Warn(err)
	}

	report.Success("Imported %d of %d records, %d new tasks", n, len(recs), len(created))

	return nil
}

// statusActive reports whether s describes a session that is still running.
func statusActive(s *Status, locked bool, now time.Time) bool {
	if s == nil {
		return false
	}

	return locked || now.Sub(s.UpdatedAt) <= statusStaleAfter
}

// statusAction prints the status line of the session running in another
// process.
func statusAction(_ *cli.Context) error {
	s, err := readStatusFile(pathutil.StatusFilePath())
	if err != nil {
		return err
	}

	now := time.Now()

	if !statusActive(s, store.IsLocked(pathutil.DBFilePath()), now) {
		return nil
	}

	fmt.Println(s.Line(now))

	return nil
}

// editConfigAction handles the edit-config command which opens the netupi
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envNetupiNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return pathutil.Initialize()
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting netupi")

	return nil
}
