// Package clock provides the time source and the single-shot timers that
// drive a tracking session.
package clock

import (
	"sync"
	"time"
)

// TimerID identifies an armed timer. The zero value never identifies a timer.
type TimerID uint64

// Fired is delivered when an armed timer expires.
type Fired struct {
	ID TimerID
	At time.Time
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Timers arms one-shot timers. Arming a timer supersedes any timer armed
// before it. Cancel is best-effort; a cancelled timer may still fire.
type Timers interface {
	Arm(d time.Duration) TimerID
	Cancel(id TimerID)
}

// System is the wall clock. Readings carry no monotonic component, so
// durations agree with those computed from stored timestamps.
type System struct{}

func (System) Now() time.Time {
	return time.Now().Round(0)
}

// Scheduler is a Timers implementation backed by time.AfterFunc. Expiries are
// delivered on C, which holds at most the latest one. Cancelled timers
// deliver nothing.
type Scheduler struct {
	mu     sync.Mutex
	seq    TimerID
	timers map[TimerID]*time.Timer
	c      chan Fired
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[TimerID]*time.Timer),
		c:      make(chan Fired, 1),
	}
}

// C returns the channel on which expiries are delivered.
func (s *Scheduler) C() <-chan Fired {
	return s.c
}

func (s *Scheduler) Arm(d time.Duration) TimerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}

	s.seq++
	id := s.seq

	s.timers[id] = time.AfterFunc(max(d, 0), func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := s.timers[id]; !ok {
			return
		}

		delete(s.timers, id)

		select {
		case <-s.c:
		default:
		}

		s.c <- Fired{ID: id, At: time.Now().Round(0)}
	})

	return id
}

func (s *Scheduler) Cancel(id TimerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
