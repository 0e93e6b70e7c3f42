package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chime.aiff")
	require.NoError(t, os.WriteFile(path, []byte("noise"), 0o600))

	_, _, err := decode(path)
	assert.ErrorIs(t, err, errInvalidSoundFormat)
}

func countSamples(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0

	for {
		n, ok := s.Stream(buf)
		total += n

		if !ok {
			return total
		}
	}
}

func TestResample(t *testing.T) {
	assert.Equal(t, 2000, countSamples(resample(beep.Silence(2000), 44100, 44100)))

	got := countSamples(resample(beep.Silence(2000), 22050, 44100))
	assert.InDelta(t, 4000, got, 50)
}

func TestRunCmd(t *testing.T) {
	cases := []struct {
		name    string
		cmd     string
		wantErr bool
	}{
		{"empty", "", false},
		{"unbalanced quotes", `echo "done`, true},
		{"missing binary", "netupi-no-such-binary --flag", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runCmd(tc.cmd)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder

	r.Notify("Work session is finished", "Take a break")
	r.PlaySound("bell.ogg")

	assert.Equal(t, []Notification{{"Work session is finished", "Take a break"}}, r.Notifications)
	assert.Equal(t, []string{"bell.ogg"}, r.Sounds)
}
