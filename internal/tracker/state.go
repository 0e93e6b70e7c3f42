package tracker

import (
	"time"

	"github.com/netupi/netupi/internal/clock"
)

// Phase is the stage of the tracking session.
type Phase int

const (
	Inactive Phase = iota
	Active
	Paused
	Break
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "Active"
	case Paused:
		return "Paused"
	case Break:
		return "Break"
	}

	return "Inactive"
}

// State is the phase of the session and the one task it is engaged with.
// TaskID is empty exactly when Phase is Inactive.
type State struct {
	Phase  Phase
	TaskID string
}

func inactive() State {
	return State{Phase: Inactive}
}

func engaged(p Phase, taskID string) State {
	return State{Phase: p, TaskID: taskID}
}

// Context is the live tracking context.
type Context struct {
	State State
	// Since is when the current phase began.
	Since time.Time
	// Timer is the id of the armed timer, zero when none is armed.
	Timer clock.TimerID
	// Elapsed is the work time carried across pauses of one session. It is
	// only used for progress display.
	Elapsed time.Duration
}

// Progress describes how far the current phase is towards its target.
type Progress struct {
	Phase   Phase
	TaskID  string
	Elapsed time.Duration
	Target  time.Duration
}

// Fraction is Elapsed over Target clamped to [0, 1].
func (p Progress) Fraction() float64 {
	if p.Target <= 0 {
		return 0
	}

	return min(max(float64(p.Elapsed)/float64(p.Target), 0), 1)
}

// Remaining is the time left before the target is reached.
func (p Progress) Remaining() time.Duration {
	return max(p.Target-p.Elapsed, 0)
}
