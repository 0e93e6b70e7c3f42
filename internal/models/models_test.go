package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeRecordValidate(t *testing.T) {
	t0 := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		rec     TimeRecord
		wantErr bool
	}{
		{"positive", TimeRecord{From: t0, To: t0.Add(time.Minute)}, false},
		{"empty", TimeRecord{From: t0, To: t0}, true},
		{"reversed", TimeRecord{From: t0, To: t0.Add(-time.Second)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrDegenerateInterval)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestTaskMapTags(t *testing.T) {
	m := TaskMap{
		"a": {ID: "a", Status: InProcess, Tags: []string{"work", "deep"}},
		"b": {ID: "b", Status: Completed, Tags: []string{"admin", "work"}},
		"c": {ID: "c", Status: Archived, Tags: []string{"old"}},
	}

	assert.Equal(t, TagSet{"admin", "deep", "work"}, m.Tags())
}

func TestNewTask(t *testing.T) {
	a := NewTask("write report")
	b := NewTask("write report")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, NeedsAction, a.Status)
}
