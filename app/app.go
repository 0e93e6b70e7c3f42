package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/netupi/netupi/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the netupi app instance.
func Get() *cli.App {
	netupiApp := &cli.App{
		Name: "netupi",
		Usage: `
		Netupi tracks the time you spend on tasks with a work and break timer.
		Every finished work interval is recorded against its task, and the
		totals for today, this week, this month and this year are always at
		hand.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "track",
				Usage:     "Start a work session on a task, prompting for one when omitted",
				UsageText: "netupi track [TASK]",
				Action:    trackAction,
			},
			{
				Name:  "task",
				Usage: "Manage tasks",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Create a task",
						UsageText: "netupi task add NAME [--tag TAG] [--priority N]",
						Flags:     []cli.Flag{tagFlag, priorityFlag},
						Action:    taskAddAction,
					},
					{
						Name:      "list",
						Usage:     "List tasks with their time totals",
						UsageText: "netupi task list [--all] [--tag TAG]",
						Flags:     []cli.Flag{allFlag, filterTagFlag},
						Action:    taskListAction,
					},
					{
						Name:      "done",
						Usage:     "Mark a task as completed",
						UsageText: "netupi task done TASK",
						Action:    taskDoneAction,
					},
					{
						Name:      "archive",
						Usage:     "Archive a task",
						UsageText: "netupi task archive TASK",
						Action:    taskArchiveAction,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print time totals per task for the day, week, month and year",
				Flags:  []cli.Flag{taskFlag},
				Action: statsAction,
			},
			{
				Name:   "today",
				Usage:  "Print the time tracked today",
				Action: todayAction,
			},
			{
				Name:   "log",
				Usage:  "List time records. Discarded records are dimmed",
				Flags:  []cli.Flag{sinceFlag, taskFlag, plainFlag},
				Action: logAction,
			},
			{
				Name:      "kill",
				Usage:     "Discard a time record so it no longer counts",
				UsageText: "netupi kill KEY",
				Action:    killAction,
			},
			{
				Name:      "restore",
				Usage:     "Bring back a discarded time record",
				UsageText: "netupi restore KEY",
				Action:    restoreAction,
			},
			{
				Name:      "import",
				Usage:     "Import time records from a CSV file of 'finish,minutes,task' rows",
				UsageText: "netupi import FILE",
				Action:    importAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running session",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			breakFlag,
			soundFlag,
			breakSoundFlag,
			sessionCmdFlag,
			driverFlag,
			disableNotificationFlag,
			noColorFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return netupiApp
}
