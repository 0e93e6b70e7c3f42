// Package notify dispatches the desktop notifications, sounds and session
// commands that mark the end of a work or break session.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/kballard/go-shellquote"
)

// Notifier is a fire-and-forget effect. Implementations must not block the
// caller.
type Notifier interface {
	Notify(title, msg string)
	PlaySound(clip string)
}

// Desktop shows notifications through the OS notification service, plays
// sound files on the default audio device and optionally runs a command after
// each notification.
type Desktop struct {
	// IconDir is looked up under the XDG data directories for icon.png.
	IconDir string
	// Cmd is run after each notification. It is split with shell quoting
	// rules.
	Cmd string

	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
}

func (d *Desktop) Notify(title, msg string) {
	go func() {
		// empty when not found
		icon, _ := xdg.SearchDataFile(filepath.Join(d.IconDir, "icon.png"))

		if err := beeep.Notify(title, msg, icon); err != nil {
			slog.Warn("unable to display notification", slog.Any("error", err))
		}

		if err := runCmd(d.Cmd); err != nil {
			slog.Warn("session command failed", slog.Any("error", err))
		}
	}()
}

func (d *Desktop) PlaySound(clip string) {
	if clip == "" || clip == "off" {
		return
	}

	go func() {
		if err := d.play(clip); err != nil {
			slog.Warn(
				"unable to play sound",
				slog.String("clip", clip),
				slog.Any("error", err),
			)
		}
	}()
}

func (d *Desktop) play(clip string) error {
	stream, format, err := decode(clip)
	if err != nil {
		return err
	}

	defer stream.Close()

	d.speakerOnce.Do(func() {
		bufferSize := 10

		d.speakerRate = format.SampleRate
		d.speakerErr = speaker.Init(
			format.SampleRate,
			format.SampleRate.N(time.Second/time.Duration(bufferSize)),
		)
	})

	if d.speakerErr != nil {
		return d.speakerErr
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(resample(stream, format.SampleRate, d.speakerRate), beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}

// resample converts s to the speaker's sample rate.
func resample(s beep.Streamer, from, to beep.SampleRate) beep.Streamer {
	if from == to {
		return s
	}

	return beep.Resample(4, from, to, s)
}

func decode(clip string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(clip)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch filepath.Ext(clip) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, format, errInvalidSoundFormat.Fmt(filepath.Ext(clip))
	}

	if err != nil {
		_ = f.Close()
		return nil, format, err
	}

	return stream, format, nil
}

// runCmd executes the specified command.
func runCmd(command string) error {
	if command == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(command)
	if err != nil {
		return fmt.Errorf("unable to parse session command: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)

	return cmd.Run()
}

// Nop discards every effect.
type Nop struct{}

func (Nop) Notify(string, string) {}

func (Nop) PlaySound(string) {}

// Recorder keeps every effect it receives. It is safe for concurrent use.
type Recorder struct {
	mu            sync.Mutex
	Notifications []Notification
	Sounds        []string
}

// Notification is a recorded call to Notify.
type Notification struct {
	Title string
	Msg   string
}

func (r *Recorder) Notify(title, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Notifications = append(r.Notifications, Notification{title, msg})
}

func (r *Recorder) PlaySound(clip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Sounds = append(r.Sounds, clip)
}
