// Package aggregate answers "how much time has been spent since X" for a task
// in logarithmic time using a prefix sum over its live time records.
package aggregate

import (
	"slices"
	"sort"
	"time"

	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/timeutil"
)

type entry struct {
	at  int64
	sum time.Duration
}

// PrefixSum maps the start time of each record to the cumulative duration of
// all records up to and including it. It always contains the epoch sentinel.
type PrefixSum struct {
	entries []entry
}

// Build creates the prefix sum of recs. Records are summed in ascending order
// of From regardless of the order they are passed in.
func Build(recs []models.TimeRecord) *PrefixSum {
	sorted := slices.Clone(recs)
	slices.SortFunc(sorted, func(a, b models.TimeRecord) int {
		return a.From.Compare(b.From)
	})

	epoch := timeutil.Epoch.UnixNano()
	p := &PrefixSum{
		entries: make([]entry, 0, len(sorted)+1),
	}

	var (
		running  time.Duration
		sentinel bool
	)

	for _, rec := range sorted {
		at := rec.From.UnixNano()
		if !sentinel && at >= epoch {
			p.entries = append(p.entries, entry{at: epoch, sum: running})
			sentinel = true
		}

		running += rec.Duration()

		if n := len(p.entries); n > 0 && p.entries[n-1].at == at {
			p.entries[n-1].sum = running
			continue
		}

		p.entries = append(p.entries, entry{at: at, sum: running})
	}

	if !sentinel {
		p.entries = append(p.entries, entry{at: epoch, sum: running})
	}

	return p
}

// Append extends the prefix sum with rec in constant time. rec must start
// after every key already present, otherwise ErrOutOfOrder is returned and
// the prefix sum is left untouched.
func (p *PrefixSum) Append(rec models.TimeRecord) error {
	last := p.entries[len(p.entries)-1]

	at := rec.From.UnixNano()
	if at <= last.at {
		return ErrOutOfOrder.Fmt(rec.From.UTC().Format(time.RFC3339Nano))
	}

	p.entries = append(p.entries, entry{at: at, sum: last.sum + rec.Duration()})

	return nil
}

// Len returns the number of keys including the sentinel.
func (p *PrefixSum) Len() int {
	return len(p.entries)
}

// TotalSince returns the summed duration of the records that start at or
// after since.
func (p *PrefixSum) TotalSince(since time.Time) time.Duration {
	k := since.UnixNano()

	i := sort.Search(len(p.entries), func(i int) bool {
		return p.entries[i].at >= k
	})

	if i == len(p.entries) {
		return 0
	}

	right := p.entries[len(p.entries)-1].sum

	var left time.Duration
	if i > 0 {
		left = p.entries[i-1].sum
	}

	return right - left
}
