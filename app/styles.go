package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/netupi/netupi/internal/tracker"
	"github.com/netupi/netupi/internal/ui"
)

type styles struct {
	Work   lipgloss.Style
	Paused lipgloss.Style
	Break  lipgloss.Style
	Main   lipgloss.Style
	Hint   lipgloss.Style
	Error  lipgloss.Style
}

func newStyles() styles {
	text := lipgloss.Color("#FFFFFF")
	hint := lipgloss.Color("#A0A0A0")

	if !ui.DarkTheme {
		text = lipgloss.Color("#000000")
		hint = lipgloss.Color("#5F5F5F")
	}

	badge := lipgloss.NewStyle().
		Padding(0, 1).
		MarginRight(1).
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	return styles{
		Work:   badge.Background(lipgloss.Color("#B14A48")).SetString("WORK"),
		Paused: badge.Background(lipgloss.Color("#7D6B1F")).SetString("PAUSED"),
		Break:  badge.Background(lipgloss.Color("#2E7D6B")).SetString("BREAK"),
		Main:   lipgloss.NewStyle().Bold(true).Foreground(text),
		Hint:   lipgloss.NewStyle().Foreground(hint),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
	}
}

func (s styles) badge(p tracker.Phase) string {
	switch p {
	case tracker.Active:
		return s.Work.Render()
	case tracker.Paused:
		return s.Paused.Render()
	case tracker.Break:
		return s.Break.Render()
	default:
		return ""
	}
}
