package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/netupi/netupi/internal/osutil"
	"github.com/netupi/netupi/internal/timeutil"
	"github.com/netupi/netupi/internal/tracker"
)

// Status is the snapshot of a running session that other processes read
// from the status file.
type Status struct {
	Phase     string        `json:"phase"`
	Task      string        `json:"task"`
	Elapsed   time.Duration `json:"elapsed"`
	Target    time.Duration `json:"target"`
	Running   bool          `json:"running"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// newStatus snapshots the controller. ok is false when no session is engaged.
func newStatus(ctrl *tracker.Controller, now time.Time) (Status, bool) {
	p := ctrl.Progress(now)
	if p.Phase == tracker.Inactive {
		return Status{}, false
	}

	task, _ := ctrl.Task(p.TaskID)

	return Status{
		Phase:     p.Phase.String(),
		Task:      task.Name,
		Elapsed:   p.Elapsed,
		Target:    p.Target,
		Running:   p.Phase != tracker.Paused,
		UpdatedAt: now,
	}, true
}

// Line renders the snapshot as it would look at now.
func (s Status) Line(now time.Time) string {
	elapsed := s.Elapsed
	if s.Running && now.After(s.UpdatedAt) {
		elapsed += now.Sub(s.UpdatedAt)
	}

	return fmt.Sprintf(
		"%s: '%s' | Elapsed: %s / %s",
		s.Phase,
		s.Task,
		timeutil.FormatDuration(elapsed),
		timeutil.FormatDuration(s.Target),
	)
}

func writeStatusFile(path string, s Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, osutil.FilePermission)
}

func removeStatusFile(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// readStatusFile returns nil without an error when there is no status file.
func readStatusFile(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decoding status file: %w", err)
	}

	return &s, nil
}
