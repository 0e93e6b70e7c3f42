package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/netupi/netupi/internal/models"
)

var t0 = time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC)

func rec(startMin, endMin int, task string) models.TimeRecord {
	return models.TimeRecord{
		From:   t0.Add(time.Duration(startMin) * time.Minute),
		To:     t0.Add(time.Duration(endMin) * time.Minute),
		TaskID: task,
	}
}

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "netupi.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, path
}

func TestTasksRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)

	tasks := []models.Task{
		{ID: "a", Name: "Write", Status: models.InProcess, Tags: []string{"work"}},
		{ID: "b", Name: "Read", Status: models.Archived, Tags: []string{"fun"}},
		{ID: "c", Name: "Plan", Status: models.NeedsAction, Tags: []string{"admin", "work"}},
	}

	for i := range tasks {
		require.NoError(t, c.SaveTask(&tasks[i]))
	}

	got, tags, err := c.LoadTasks()
	require.NoError(t, err)

	assert.Len(t, got, 3)
	assert.Equal(t, tasks[0], got["a"])
	assert.Equal(t, models.TagSet{"admin", "work"}, tags)
}

func TestLoadRecordsRange(t *testing.T) {
	c, _ := newTestClient(t)

	// fractions of different lengths must still sort by time
	recs := []models.TimeRecord{
		rec(0, 10, "a"),
		{From: t0.Add(10*time.Minute + 500*time.Millisecond), To: t0.Add(20 * time.Minute), TaskID: "a"},
		{From: t0.Add(10*time.Minute + 123456789), To: t0.Add(10*time.Minute + 400*time.Millisecond), TaskID: "b"},
		rec(30, 40, "b"),
	}

	for _, r := range recs {
		require.NoError(t, c.AppendRecord(r))
	}

	got, err := c.LoadRecords(time.Time{}, time.Time{})
	require.NoError(t, err)

	want := []models.TimeRecord{recs[0], recs[2], recs[1], recs[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("LoadRecords() mismatch (-want +got):\n%s", diff)
	}

	got, err = c.LoadRecords(t0.Add(10*time.Minute), t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRemoveAndRestoreRecord(t *testing.T) {
	c, path := newTestClient(t)

	require.NoError(t, c.AppendRecord(rec(0, 10, "a")))
	require.NoError(t, c.AppendRecord(rec(10, 20, "a")))

	require.NoError(t, c.RemoveRecord(t0))
	// removing twice is not an error
	require.NoError(t, c.RemoveRecord(t0))

	err := c.RemoveRecord(t0.Add(time.Hour))
	assert.ErrorIs(t, err, ErrRecordNotFound)

	live, err := c.LoadRecords(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.TimeRecord{rec(10, 20, "a")}, live)

	// killed records survive a restart
	require.NoError(t, c.Close())

	c, err = NewClient(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	killed, err := c.LoadKilled()
	require.NoError(t, err)
	assert.Equal(t, []models.TimeRecord{rec(0, 10, "a")}, killed)

	require.NoError(t, c.AppendRecord(rec(0, 10, "a")))

	killed, err = c.LoadKilled()
	require.NoError(t, err)
	assert.Empty(t, killed)

	live, err = c.LoadRecords(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, live, 2)
}

func TestAppendRejectsDegenerate(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.AppendRecord(rec(10, 10, "a"))
	assert.ErrorIs(t, err, models.ErrDegenerateInterval)
}

func TestSecondOpenIsRejected(t *testing.T) {
	_, path := newTestClient(t)

	assert.True(t, IsLocked(path))

	_, err := openDB(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestSchemaVersion(t *testing.T) {
	c, path := newTestClient(t)

	err := c.View(func(tx *bolt.Tx) error {
		assert.Equal(t, uint64(schemaVersion), readVersion(tx))
		return nil
	})
	require.NoError(t, err)

	err = c.Update(func(tx *bolt.Tx) error {
		return writeVersion(tx, schemaVersion+1)
	})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = NewClient(path)
	assert.ErrorIs(t, err, errUnknownSchema)
}
