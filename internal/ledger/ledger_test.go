package ledger

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netupi/netupi/internal/models"
)

var t0 = time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)

func rec(startMin, endMin int, task string) models.TimeRecord {
	return models.TimeRecord{
		From:   t0.Add(time.Duration(startMin) * time.Minute),
		To:     t0.Add(time.Duration(endMin) * time.Minute),
		TaskID: task,
	}
}

func TestInsertKeepsOrder(t *testing.T) {
	l, err := New(rec(60, 90, "a"), rec(0, 30, "b"), rec(30, 45, "a"))
	require.NoError(t, err)

	want := []models.TimeRecord{rec(0, 30, "b"), rec(30, 45, "a"), rec(60, 90, "a")}

	if diff := cmp.Diff(want, l.Records()); diff != "" {
		t.Fatalf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSkipsInvalidRecords(t *testing.T) {
	l, err := New(rec(0, 30, "a"), rec(0, 10, "b"), rec(40, 40, "b"), rec(60, 90, "a"))

	assert.ErrorIs(t, err, ErrDuplicateRecord)
	assert.ErrorIs(t, err, models.ErrDegenerateInterval)

	want := []models.TimeRecord{rec(0, 30, "a"), rec(60, 90, "a")}

	if diff := cmp.Diff(want, l.Records()); diff != "" {
		t.Fatalf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertRejects(t *testing.T) {
	l, err := New(rec(0, 30, "a"))
	require.NoError(t, err)

	err = l.Insert(rec(0, 10, "b"))
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	err = l.Insert(rec(40, 40, "b"))
	assert.ErrorIs(t, err, models.ErrDegenerateInterval)

	assert.Equal(t, 1, l.Len())
}

func TestRange(t *testing.T) {
	l, err := New(rec(0, 10, "a"), rec(10, 20, "a"), rec(20, 30, "b"))
	require.NoError(t, err)

	got := l.Range(t0.Add(10*time.Minute), t0.Add(20*time.Minute))
	assert.Equal(t, []models.TimeRecord{rec(10, 20, "a")}, got)

	got = l.Range(t0.Add(5*time.Minute), time.Time{})
	assert.Len(t, got, 2)

	assert.Empty(t, l.Range(t0.Add(time.Hour), time.Time{}))
}

func TestKillRestore(t *testing.T) {
	l, err := New(rec(0, 10, "a"), rec(10, 20, "a"), rec(20, 30, "b"))
	require.NoError(t, err)

	from := t0.Add(10 * time.Minute)

	for range 2 {
		_, err = l.Kill(from)
		require.NoError(t, err)
		assert.True(t, l.Killed(from))
		assert.Equal(t, []models.TimeRecord{rec(0, 10, "a")}, l.Live("a"))
	}

	// killed records are still listed
	assert.Equal(t, 3, l.Len())

	for range 2 {
		_, err = l.Restore(from)
		require.NoError(t, err)
		assert.False(t, l.Killed(from))
	}

	assert.Equal(t, []models.TimeRecord{rec(0, 10, "a"), rec(10, 20, "a")}, l.Live("a"))
}

func TestKillUnknown(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	_, err = l.Kill(t0)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = l.Restore(t0)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
