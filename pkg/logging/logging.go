// Package logging configures structured logging for the server.
//
// Usage:
//
//	logger, closer := logging.New(logging.Options{Level: "info"})
//	defer closer.Close()
//	slog.SetDefault(logger)
//
// Without a File, logs are colored text on stderr via tint. With a File,
// they are JSON lines written to a rotating file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string

	// File enables JSON logging to a rotated file at this path.
	File string

	// Output overrides stderr for the colored handler; used in tests.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from opts. The returned closer flushes and closes the
// log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	level := LevelFromString(opts.Level)

	if opts.File != "" {
		if !strings.HasSuffix(opts.File, ".log") {
			opts.File += ".log"
		}
		rotator := &lumberjack.Logger{
			Filename:  opts.File,
			MaxSize:   50, // megabytes
			MaxAge:    30, // days
			LocalTime: false,
			Compress:  true,
		}
		handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
		return slog.New(handler), rotator
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return slog.New(
		tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    out != os.Stderr,
		}),
	), nopCloser{}
}

// LevelFromString maps a level name to a slog level, defaulting to INFO.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
