package ui

import (
	"github.com/pterm/pterm"

	"github.com/netupi/netupi/internal/models"
)

// DarkTheme picks the light variants of each colour.
var DarkTheme = true

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Dim(a any) string {
	return pterm.FgGray.Sprint(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Status colours a task status.
func Status(s models.Status) string {
	switch s {
	case models.InProcess:
		return Cyan(s.String())
	case models.Completed:
		return Green(s.String())
	case models.Archived:
		return Dim(s.String())
	}

	return Magenta(s.String())
}
