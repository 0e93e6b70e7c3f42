package aggregate

import (
	"errors"
	"log/slog"
	"time"

	"github.com/netupi/netupi/internal/ledger"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/timeutil"
)

// Durations holds the time spent since each calendar boundary.
type Durations struct {
	Day   time.Duration `json:"day"`
	Week  time.Duration `json:"week"`
	Month time.Duration `json:"month"`
	Year  time.Duration `json:"year"`
	Total time.Duration `json:"total"`
}

// Add returns the field-wise sum of d and o.
func (d Durations) Add(o Durations) Durations {
	return Durations{
		Day:   d.Day + o.Day,
		Week:  d.Week + o.Week,
		Month: d.Month + o.Month,
		Year:  d.Year + o.Year,
		Total: d.Total + o.Total,
	}
}

// Aggregator keeps one prefix sum per task, built from the live records of a
// ledger.
type Aggregator struct {
	ledger *ledger.Ledger
	sums   map[string]*PrefixSum
}

// New creates an aggregator over l and builds the prefix sum of every task
// that has records.
func New(l *ledger.Ledger) *Aggregator {
	a := &Aggregator{
		ledger: l,
		sums:   make(map[string]*PrefixSum),
	}

	a.RebuildAll()

	return a
}

// Append adds a record that has already been inserted into the ledger. An
// out-of-order record triggers a rebuild of its task.
func (a *Aggregator) Append(rec models.TimeRecord) {
	sum, ok := a.sums[rec.TaskID]
	if !ok {
		a.Rebuild(rec.TaskID)
		return
	}

	err := sum.Append(rec)
	if errors.Is(err, ErrOutOfOrder) {
		slog.Debug(
			"rebuilding prefix sum",
			slog.String("task_id", rec.TaskID),
			slog.Time("from", rec.From),
		)

		a.Rebuild(rec.TaskID)
	}
}

// Rebuild recomputes the prefix sum of taskID from the ledger.
func (a *Aggregator) Rebuild(taskID string) {
	live := a.ledger.Live(taskID)
	if len(live) == 0 {
		delete(a.sums, taskID)
		return
	}

	a.sums[taskID] = Build(live)
}

// RebuildAll discards every prefix sum and recomputes them from the ledger.
func (a *Aggregator) RebuildAll() {
	clear(a.sums)

	for _, id := range a.ledger.Tasks() {
		a.Rebuild(id)
	}
}

// Total returns the time spent on taskID in records starting at or after
// since.
func (a *Aggregator) Total(taskID string, since time.Time) time.Duration {
	sum, ok := a.sums[taskID]
	if !ok {
		return 0
	}

	return sum.TotalSince(since)
}

// TotalAll returns Total summed over every task.
func (a *Aggregator) TotalAll(since time.Time) time.Duration {
	var total time.Duration

	for id := range a.sums {
		total += a.Total(id, since)
	}

	return total
}

// Durations returns the time spent on taskID since each boundary of now.
func (a *Aggregator) Durations(taskID string, now time.Time) Durations {
	return Durations{
		Day:   a.Total(taskID, timeutil.DayStart(now)),
		Week:  a.Total(taskID, timeutil.WeekStart(now)),
		Month: a.Total(taskID, timeutil.MonthStart(now)),
		Year:  a.Total(taskID, timeutil.YearStart(now)),
		Total: a.Total(taskID, timeutil.Epoch),
	}
}

// DurationsAll returns Durations summed over every task.
func (a *Aggregator) DurationsAll(now time.Time) Durations {
	var d Durations

	for id := range a.sums {
		d = d.Add(a.Durations(id, now))
	}

	return d
}
