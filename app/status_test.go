package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLine(t *testing.T) {
	s := Status{
		Phase:     "Active",
		Task:      "Write",
		Elapsed:   10 * time.Minute,
		Target:    50 * time.Minute,
		Running:   true,
		UpdatedAt: t0,
	}

	assert.Equal(t, "Active: 'Write' | Elapsed: 12m / 50m", s.Line(t0.Add(2*time.Minute)))

	s.Phase = "Paused"
	s.Running = false

	assert.Equal(t, "Paused: 'Write' | Elapsed: 10m / 50m", s.Line(t0.Add(2*time.Minute)))
}

func TestStatusActive(t *testing.T) {
	fresh := &Status{UpdatedAt: t0}

	testCases := []struct {
		name   string
		status *Status
		locked bool
		now    time.Time
		want   bool
	}{
		{"no status file", nil, true, t0, false},
		{"database locked", fresh, true, t0.Add(time.Hour), true},
		{"recently updated", fresh, false, t0.Add(time.Second), true},
		{"stale and unlocked", fresh, false, t0.Add(time.Minute), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusActive(tc.status, tc.locked, tc.now))
		})
	}
}

func TestStatusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	s, err := readStatusFile(path)
	require.NoError(t, err)
	assert.Nil(t, s)

	want := Status{
		Phase:     "Break",
		Task:      "Review",
		Elapsed:   3 * time.Minute,
		Target:    10 * time.Minute,
		Running:   true,
		UpdatedAt: t0,
	}

	require.NoError(t, writeStatusFile(path, want))

	s, err = readStatusFile(path)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, want.UpdatedAt.Equal(s.UpdatedAt))
	assert.Equal(t, want.Line(t0), s.Line(t0))

	require.NoError(t, removeStatusFile(path))
	require.NoError(t, removeStatusFile(path))

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err = readStatusFile(path)
	assert.Error(t, err)
}
