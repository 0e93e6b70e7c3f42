// Package ledger holds every time record ever written, ordered by start time,
// together with the set of records that have been soft-deleted.
package ledger

import (
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/netupi/netupi/internal/models"
)

// Ledger is an ordered collection of time records keyed by their start time.
// Killed records remain in the ledger but are excluded from Live.
type Ledger struct {
	records []models.TimeRecord
	killed  map[int64]struct{}
}

// New creates a ledger from recs. Records that fail validation or collide
// with an earlier record on From are skipped; their errors are joined and
// returned alongside the ledger holding every other record.
func New(recs ...models.TimeRecord) (*Ledger, error) {
	l := &Ledger{
		killed: make(map[int64]struct{}),
	}

	var errs []error

	for _, rec := range recs {
		if err := l.Insert(rec); err != nil {
			errs = append(errs, err)
		}
	}

	return l, errors.Join(errs...)
}

func key(t time.Time) int64 {
	return t.UnixNano()
}

// search returns the index where from is or would be inserted.
func (l *Ledger) search(from time.Time) (int, bool) {
	k := key(from)

	i := sort.Search(len(l.records), func(i int) bool {
		return key(l.records[i].From) >= k
	})

	return i, i < len(l.records) && key(l.records[i].From) == k
}

// Insert adds rec to the ledger.
func (l *Ledger) Insert(rec models.TimeRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	i, found := l.search(rec.From)
	if found {
		return ErrDuplicateRecord.Fmt(rec.From.UTC().Format(time.RFC3339Nano))
	}

	l.records = slices.Insert(l.records, i, rec)

	return nil
}

// Get returns the record that starts at from.
func (l *Ledger) Get(from time.Time) (models.TimeRecord, bool) {
	i, found := l.search(from)
	if !found {
		return models.TimeRecord{}, false
	}

	return l.records[i], true
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of every record, killed ones included, in ascending
// order of From.
func (l *Ledger) Records() []models.TimeRecord {
	return slices.Clone(l.records)
}

// Range returns the records with From in [from, to). A zero to means no upper
// bound.
func (l *Ledger) Range(from, to time.Time) []models.TimeRecord {
	start, _ := l.search(from)
	end := len(l.records)

	if !to.IsZero() {
		end, _ = l.search(to)
	}

	if start >= end {
		return nil
	}

	return slices.Clone(l.records[start:end])
}

// Live returns the records of taskID that have not been killed, ascending.
func (l *Ledger) Live(taskID string) []models.TimeRecord {
	var out []models.TimeRecord

	for _, rec := range l.records {
		if rec.TaskID != taskID || l.isKilled(rec.From) {
			continue
		}

		out = append(out, rec)
	}

	return out
}

// Kill marks the record starting at from as deleted. Killing a killed record
// does nothing.
func (l *Ledger) Kill(from time.Time) (models.TimeRecord, error) {
	rec, ok := l.Get(from)
	if !ok {
		return rec, ErrRecordNotFound.Fmt(from.UTC().Format(time.RFC3339Nano))
	}

	l.killed[key(from)] = struct{}{}

	return rec, nil
}

// Restore undoes Kill. Restoring a live record does nothing.
func (l *Ledger) Restore(from time.Time) (models.TimeRecord, error) {
	rec, ok := l.Get(from)
	if !ok {
		return rec, ErrRecordNotFound.Fmt(from.UTC().Format(time.RFC3339Nano))
	}

	delete(l.killed, key(from))

	return rec, nil
}

// Killed reports whether the record starting at from is soft-deleted.
func (l *Ledger) Killed(from time.Time) bool {
	return l.isKilled(from)
}

func (l *Ledger) isKilled(from time.Time) bool {
	_, ok := l.killed[key(from)]
	return ok
}

// Tasks returns the distinct task ids that own at least one record.
func (l *Ledger) Tasks() []string {
	var ids []string

	for _, rec := range l.records {
		if !slices.Contains(ids, rec.TaskID) {
			ids = append(ids, rec.TaskID)
		}
	}

	return ids
}
