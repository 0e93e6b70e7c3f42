package app

import "github.com/urfave/cli/v2"

var (
	workFlag = &cli.StringFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Default work duration, e.g. 45m or 45 (minutes). Tasks may override it",
	}

	breakFlag = &cli.StringFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Default break duration, e.g. 10m or 10 (minutes)",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Sound file played when a work session ends. Set to 'off' to disable",
	}

	breakSoundFlag = &cli.StringFlag{
		Name:    "break-sound",
		Aliases: []string{"bs"},
		Usage:   "Sound file played when a break ends. Set to 'off' to disable",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each notification",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Storage backend: bolt or sqlite",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a session or break ends",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include records that start after this time (e.g. 'yesterday', '2 weeks ago')",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Restrict the output to a single task, by name or id",
	}

	tagFlag = &cli.StringSliceFlag{
		Name:  "tag",
		Usage: "Add a tag to the task. Can be repeated",
	}

	filterTagFlag = &cli.StringFlag{
		Name:  "tag",
		Usage: "Only list tasks carrying this tag",
	}

	priorityFlag = &cli.IntFlag{
		Name:  "priority",
		Usage: "Task priority, higher sorts first",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Include archived tasks",
	}

	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Print tab-separated rows instead of a table",
	}
)
