package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/netupi/netupi/internal/clock"
	"github.com/netupi/netupi/internal/timeutil"
	"github.com/netupi/netupi/internal/tracker"
)

const maxProgressWidth = 60

type (
	tickMsg  time.Time
	firedMsg clock.Fired
)

// trackModel is the interactive view of a running session. Every command
// and timer expiry reaches the controller through Update, so the controller
// only ever runs on the bubbletea event loop.
type trackModel struct {
	ctrl       *tracker.Controller
	clock      clock.Clock
	fired      <-chan clock.Fired
	statusPath string
	timeFormat string
	lastTask   string

	keys     keymap
	help     help.Model
	progress progress.Model
	styles   styles
	err      error
}

func newTrackModel(
	ctrl *tracker.Controller,
	clk clock.Clock,
	fired <-chan clock.Fired,
	statusPath, timeFormat string,
) *trackModel {
	return &trackModel{
		ctrl:       ctrl,
		clock:      clk,
		fired:      fired,
		statusPath: statusPath,
		timeFormat: timeFormat,
		lastTask:   ctrl.Context().State.TaskID,
		keys:       defaultKeymap,
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxProgressWidth)),
		styles:     newStyles(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForFire delivers the next timer expiry as a message.
func waitForFire(ch <-chan clock.Fired) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}

		return firedMsg(f)
	}
}

func (m *trackModel) Init() tea.Cmd {
	m.syncStatus()

	return tea.Batch(tick(), waitForFire(m.fired))
}

func (m *trackModel) engaged() bool {
	return m.ctrl.Context().State.Phase != tracker.Inactive
}

// syncStatus mirrors the session into the status file.
func (m *trackModel) syncStatus() {
	if id := m.ctrl.Context().State.TaskID; id != "" {
		m.lastTask = id
	}

	if m.statusPath == "" {
		return
	}

	s, ok := newStatus(m.ctrl, m.clock.Now())
	if !ok {
		if err := removeStatusFile(m.statusPath); err != nil {
			slog.Warn("unable to remove status file", slog.Any("error", err))
		}

		return
	}

	if err := writeStatusFile(m.statusPath, s); err != nil {
		slog.Warn("unable to write status file", slog.Any("error", err))
	}
}

func (m *trackModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.quit):
		if m.engaged() {
			m.err = m.ctrl.Stop()
		}

		m.syncStatus()

		return m, tea.Quit

	case key.Matches(msg, m.keys.togglePlay):
		switch m.ctrl.Context().State.Phase {
		case tracker.Active:
			m.err = m.ctrl.Pause()
		case tracker.Paused:
			m.err = m.ctrl.Resume()
		}

	case key.Matches(msg, m.keys.stop):
		if m.engaged() {
			m.err = m.ctrl.Stop()
		}

	case key.Matches(msg, m.keys.enter):
		if !m.engaged() && m.lastTask != "" {
			m.err = m.ctrl.Start(m.lastTask)
		}
	}

	m.syncStatus()

	return m, nil
}

func (m *trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.syncStatus()

		return m, tick()

	case firedMsg:
		slog.Debug(spew.Sdump(msg))

		if m.ctrl.Fire(msg.ID) {
			m.syncStatus()
		}

		return m, waitForFire(m.fired)

	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-4, 10), maxProgressWidth)
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		slog.Debug(spew.Sdump(msg))

		return m.handleKeyPress(msg)
	}

	return m, nil
}

// formatClock renders d as MM:SS, or H:MM:SS past an hour.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)

	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}

	return fmt.Sprintf("%02d:%02d", mins, secs)
}

func (m *trackModel) idleView() string {
	var s strings.Builder

	task, _ := m.ctrl.Task(m.lastTask)

	s.WriteString(m.styles.Main.Render("No session is running"))
	s.WriteString("\n\n" + m.styles.Hint.Render(
		fmt.Sprintf("Press enter to start another session on '%s'", task.Name),
	))

	return s.String()
}

func (m *trackModel) sessionView(now time.Time) string {
	var s strings.Builder

	p := m.ctrl.Progress(now)
	task, _ := m.ctrl.Task(p.TaskID)

	s.WriteString(m.styles.badge(p.Phase))
	s.WriteString(m.styles.Main.Render(task.Name))
	s.WriteString("\n\n")
	s.WriteString(m.styles.Main.Render(formatClock(p.Remaining())))

	if p.Phase == tracker.Paused {
		s.WriteString(m.styles.Hint.Render(" [Paused]"))
	} else {
		end := now.Add(p.Remaining())
		s.WriteString(m.styles.Hint.Render(" until " + end.Format(m.timeFormat)))
	}

	s.WriteString("\n\n" + m.progress.ViewAs(p.Fraction()))

	return s.String()
}

func (m *trackModel) View() string {
	now := m.clock.Now()

	var s strings.Builder

	s.WriteString("\n")

	if m.engaged() {
		s.WriteString(m.sessionView(now))
	} else {
		s.WriteString(m.idleView())
	}

	if m.lastTask != "" {
		d := m.ctrl.Durations(m.lastTask, now)
		s.WriteString("\n\n" + m.styles.Hint.Render(
			fmt.Sprintf(
				"Today: %s · Week: %s · Total: %s",
				timeutil.FormatDuration(d.Day),
				timeutil.FormatDuration(d.Week),
				timeutil.FormatDuration(d.Total),
			),
		))
	}

	if m.err != nil {
		s.WriteString("\n\n" + m.styles.Error.Render(m.err.Error()))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView(m.keys.bindings(m.engaged())) + "\n")

	return s.String()
}
