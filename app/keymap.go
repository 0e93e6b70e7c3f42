package app

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	stop       key.Binding
	enter      key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start again"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// bindings returns the keys that apply while a session is engaged or idle.
func (k keymap) bindings(engaged bool) []key.Binding {
	if engaged {
		return []key.Binding{k.togglePlay, k.stop, k.quit}
	}

	return []key.Binding{k.enter, k.quit}
}
