package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/netupi/netupi/internal/clock"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/testutil"
	"github.com/netupi/netupi/internal/tracker"
)

var t0 = time.Date(2024, time.May, 6, 9, 0, 0, 0, time.UTC)

func newTask(id, name string) models.Task {
	return models.Task{
		ID:     id,
		Name:   name,
		Status: models.NeedsAction,
	}
}

func record(taskID string, from time.Time, d time.Duration) models.TimeRecord {
	return models.TimeRecord{From: from, To: from.Add(d), TaskID: taskID}
}

// newController builds a controller over an in-memory store holding tasks,
// live records and killed records.
func newController(
	t *testing.T,
	clk *clock.Fake,
	tasks []models.Task,
	live, killed []models.TimeRecord,
) (*tracker.Controller, *testutil.MemStore) {
	t.Helper()

	db := testutil.NewMemStore()

	for i := range tasks {
		require.NoError(t, db.SaveTask(&tasks[i]))
	}

	for _, rec := range live {
		db.Records[rec.From.UnixNano()] = rec
	}

	for _, rec := range killed {
		db.Killed[rec.From.UnixNano()] = rec
	}

	ctrl, err := tracker.New(
		db,
		clk,
		clk,
		tracker.WithDurations(50*time.Minute, 10*time.Minute),
	)
	require.NoError(t, err)

	return ctrl, db
}
