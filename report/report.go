// Package report prints user-facing messages to the terminal
package report

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/netupi/netupi/internal/tracker"
)

func Success(format string, a ...any) {
	pterm.Success.Printfln(format, a...)
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Warn(err error) {
	pterm.Warning.Println(err)
}

// Diagnostic reports a non-fatal error from the tracker. Failed writes are
// shown to the user, everything else only goes to the log.
func Diagnostic(err error) {
	slog.Warn("diagnostic", slog.Any("error", err))

	var persistErr *tracker.PersistenceError
	if errors.As(err, &persistErr) {
		Warn(err)
	}
}

func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}
