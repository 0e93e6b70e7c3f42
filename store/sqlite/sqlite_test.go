package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/store"
)

var t0 = time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC)

func rec(startMin, endMin int, task string) models.TimeRecord {
	return models.TimeRecord{
		From:   t0.Add(time.Duration(startMin) * time.Minute),
		To:     t0.Add(time.Duration(endMin) * time.Minute),
		TaskID: task,
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "netupi.sqlite"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestRecords(t *testing.T) {
	c := newTestClient(t)

	for _, r := range []models.TimeRecord{rec(30, 40, "b"), rec(0, 10, "a"), rec(10, 25, "a")} {
		require.NoError(t, c.AppendRecord(r))
	}

	got, err := c.LoadRecords(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []models.TimeRecord{rec(0, 10, "a"), rec(10, 25, "a"), rec(30, 40, "b")}, got)

	got, err = c.LoadRecords(t0.Add(10*time.Minute), t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []models.TimeRecord{rec(10, 25, "a")}, got)
}

func TestKillAndRestore(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.AppendRecord(rec(0, 10, "a")))
	require.NoError(t, c.RemoveRecord(t0))
	require.NoError(t, c.RemoveRecord(t0))

	assert.ErrorIs(t, c.RemoveRecord(t0.Add(time.Hour)), store.ErrRecordNotFound)

	live, err := c.LoadRecords(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, live)

	killed, err := c.LoadKilled()
	require.NoError(t, err)
	assert.Equal(t, []models.TimeRecord{rec(0, 10, "a")}, killed)

	require.NoError(t, c.AppendRecord(rec(0, 10, "a")))

	killed, err = c.LoadKilled()
	require.NoError(t, err)
	assert.Empty(t, killed)
}

func TestTasks(t *testing.T) {
	c := newTestClient(t)

	task := models.Task{ID: "a", Name: "Write", Status: models.NeedsAction, Tags: []string{"work"}}
	require.NoError(t, c.SaveTask(&task))

	task.Status = models.Completed
	require.NoError(t, c.SaveTask(&task))

	tasks, tags, err := c.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, models.TaskMap{"a": task}, tasks)
	assert.Equal(t, models.TagSet{"work"}, tags)
}
