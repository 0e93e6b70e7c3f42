package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netupi/netupi/internal/aggregate"
	"github.com/netupi/netupi/internal/clock"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/testutil"
	"github.com/netupi/netupi/internal/timeutil"
)

func TestWriteLogPlain(t *testing.T) {
	tasks := []models.Task{newTask("w", "Write"), newTask("r", "Review")}

	live := []models.TimeRecord{
		record("w", t0, 50*time.Minute),
		record("w", t0.Add(28*time.Hour+30*time.Minute), 75*time.Minute),
	}
	killed := []models.TimeRecord{
		record("r", t0.Add(time.Hour), 25*time.Minute),
	}

	ctrl, _ := newController(t, clock.NewFake(t0.Add(48*time.Hour)), tasks, live, killed)

	testCases := []struct {
		name   string
		taskID string
		since  time.Time
		golden string
	}{
		{
			name:   "every record",
			since:  timeutil.Epoch,
			golden: "log_plain",
		},
		{
			name:   "one task",
			taskID: "w",
			since:  timeutil.Epoch,
			golden: "log_plain_write",
		},
		{
			name:   "nothing since",
			since:  t0.Add(72 * time.Hour),
			golden: "log_plain_empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			rows := logRows(ctrl.Model(), tc.since, tc.taskID)
			require.NoError(t, writeLogPlain(&buf, rows, "15:04", time.UTC))

			var out []byte
			if buf.Len() > 0 {
				out = buf.Bytes()
			}

			testutil.CompareGoldenFile(t, tc.golden, out)
		})
	}
}

func TestLogRowsMarksKilled(t *testing.T) {
	tasks := []models.Task{newTask("w", "Write")}
	live := []models.TimeRecord{record("w", t0, time.Hour)}
	killed := []models.TimeRecord{record("w", t0.Add(2*time.Hour), time.Hour)}

	ctrl, _ := newController(t, clock.NewFake(t0), tasks, live, killed)

	rows := logRows(ctrl.Model(), timeutil.Epoch, "")
	require.Len(t, rows, 2)

	assert.False(t, rows[0].Killed)
	assert.True(t, rows[1].Killed)

	from, err := parseKey(rows[1].Key)
	require.NoError(t, err)
	assert.True(t, from.Equal(t0.Add(2*time.Hour)))

	_, err = ctrl.Restore(from)
	require.NoError(t, err)

	rows = logRows(ctrl.Model(), timeutil.Epoch, "")
	assert.False(t, rows[1].Killed)
}

func TestSortTasks(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Name: "Task 10"},
		{ID: "2", Name: "Task 2"},
		{ID: "3", Name: "Errands", Priority: 2},
		{ID: "4", Name: "Task 1"},
	}

	sortTasks(tasks)

	var names []string
	for _, task := range tasks {
		names = append(names, task.Name)
	}

	if diff := cmp.Diff([]string{"Errands", "Task 1", "Task 2", "Task 10"}, names); diff != "" {
		t.Errorf("sortTasks() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectTasks(t *testing.T) {
	archived := newTask("a", "Old")
	archived.Status = models.Archived

	archived.Tags = []string{"home"}

	tagged := newTask("c", "Chores")
	tagged.Tags = []string{"home", "weekly"}

	tasks := models.TaskMap{
		"a": archived,
		"b": newTask("b", "New"),
		"c": tagged,
	}

	assert.Len(t, selectTasks(tasks, false, ""), 2)
	assert.Len(t, selectTasks(tasks, true, ""), 3)

	got := selectTasks(tasks, false, "home")
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)

	assert.Len(t, selectTasks(tasks, true, "home"), 2)
	assert.Empty(t, selectTasks(tasks, true, "work"))
}

func TestStatsTable(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	tasks := []models.Task{newTask("w", "Write"), newTask("r", "Review")}

	durations := map[string]aggregate.Durations{
		"w": {Day: time.Hour, Week: 2 * time.Hour, Month: 3 * time.Hour, Year: 4 * time.Hour, Total: 5 * time.Hour},
	}

	got := statsTable(tasks, func(id string) aggregate.Durations {
		return durations[id]
	}, durations["w"])

	want := [][]string{
		{"TASK", "TODAY", "WEEK", "MONTH", "YEAR", "TOTAL"},
		{"Write", "1h 0m", "2h 0m", "3h 0m", "4h 0m", "5h 0m"},
		{"ALL", "1h 0m", "2h 0m", "3h 0m", "4h 0m", "5h 0m"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statsTable() mismatch (-want +got):\n%s", diff)
	}
}
