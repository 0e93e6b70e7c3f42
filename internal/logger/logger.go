// Package logger configures the process-wide slog logger to write to a
// rotating log file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/netupi/netupi/internal/osutil"
)

// Options controls where and how much is logged.
type Options struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// New returns a logger writing to a rotating file at opts.Path, along with
// the writer so that it can be closed on exit.
func New(opts Options) (*slog.Logger, io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), osutil.DirPermission); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})

	return slog.New(handler), w, nil
}

// Setup installs the logger built from opts as the slog default.
func Setup(opts Options) (io.Closer, error) {
	l, w, err := New(opts)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(l)

	return w, nil
}
