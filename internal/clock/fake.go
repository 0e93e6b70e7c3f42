package clock

import (
	"sort"
	"time"
)

type pending struct {
	id TimerID
	at time.Time
}

// Fake is a manually driven Clock and Timers. Unlike Scheduler it keeps
// superseded timers pending so tests can deliver stale expiries.
type Fake struct {
	now     time.Time
	seq     TimerID
	pending []pending
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	return f.now
}

// Set moves the clock to t without firing timers.
func (f *Fake) Set(t time.Time) {
	f.now = t
}

func (f *Fake) Arm(d time.Duration) TimerID {
	f.seq++
	f.pending = append(f.pending, pending{id: f.seq, at: f.now.Add(max(d, 0))})

	return f.seq
}

func (f *Fake) Cancel(id TimerID) {
	for i, p := range f.pending {
		if p.id == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

// Armed returns the id of the most recently armed timer that is still
// pending.
func (f *Fake) Armed() (TimerID, bool) {
	var latest TimerID

	for _, p := range f.pending {
		latest = max(latest, p.id)
	}

	return latest, latest != 0
}

// Advance moves the clock forward by d and returns the timers that expired,
// in expiry order.
func (f *Fake) Advance(d time.Duration) []Fired {
	f.now = f.now.Add(d)

	var (
		fired []Fired
		keep  []pending
	)

	for _, p := range f.pending {
		if p.at.After(f.now) {
			keep = append(keep, p)
			continue
		}

		fired = append(fired, Fired{ID: p.id, At: p.at})
	}

	f.pending = keep

	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].At.Before(fired[j].At)
	})

	return fired
}
