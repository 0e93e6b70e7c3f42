package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netupi/netupi/internal/models"
)

func TestParse(t *testing.T) {
	known := models.TaskMap{
		"work-id": {ID: "work-id", Name: "Work", Status: models.InProcess},
	}

	input := `finish,minutes,name
2021-10-05-19-18,50,Work
2021-10-05-20-30,25,Reading
2021-10-06-09-00, 15, Reading
`

	created, recs, err := Parse(strings.NewReader(input), known)
	require.NoError(t, err)

	require.Len(t, created, 1)

	var readingID string
	for id, task := range created {
		readingID = id
		assert.Equal(t, "Reading", task.Name)
		assert.Equal(t, models.NeedsAction, task.Status)
	}

	finish := time.Date(2021, time.October, 5, 19, 18, 0, 0, time.UTC)

	require.Len(t, recs, 3)
	assert.Equal(t, models.TimeRecord{
		From:   finish.Add(-50 * time.Minute),
		To:     finish,
		TaskID: "work-id",
	}, recs[0])
	assert.Equal(t, readingID, recs[1].TaskID)
	assert.Equal(t, readingID, recs[2].TaskID)
	assert.Equal(t, 15*time.Minute, recs[2].Duration())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantLine int
		wantErr  error
	}{
		{
			name:     "bad finish",
			input:    "finish,minutes,name\n2021/10/05 19:18,50,Work\n",
			wantLine: 2,
			wantErr:  errInvalidFinish,
		},
		{
			name:     "bad minutes",
			input:    "finish,minutes,name\n2021-10-05-19-18,50,Work\n2021-10-05-20-18,ten,Work\n",
			wantLine: 3,
			wantErr:  errInvalidMinutes,
		},
		{
			name:     "zero minutes",
			input:    "finish,minutes,name\n2021-10-05-19-18,0,Work\n",
			wantLine: 2,
			wantErr:  errInvalidMinutes,
		},
		{
			name:     "negative minutes",
			input:    "finish,minutes,name\n2021-10-05-19-18,-5,Work\n",
			wantLine: 2,
			wantErr:  errInvalidMinutes,
		},
		{
			name:     "minutes overflow duration",
			input:    "finish,minutes,name\n2021-10-05-19-18,50,Work\n2021-10-05-20-18,153722867280912931,Work\n",
			wantLine: 3,
			wantErr:  errInvalidMinutes,
		},
		{
			name:     "empty name",
			input:    "finish,minutes,name\n2021-10-05-19-18,5, \n",
			wantLine: 2,
			wantErr:  errEmptyName,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tc.input), nil)

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tc.wantLine, rowErr.Line)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseWrongFieldCount(t *testing.T) {
	_, _, err := Parse(strings.NewReader("finish,minutes,name\n2021-10-05-19-18,50\n"), nil)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
}

func TestParseHeaderOnly(t *testing.T) {
	created, recs, err := Parse(strings.NewReader("finish,minutes,name\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, recs)
}
