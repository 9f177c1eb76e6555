// Package logging provides structured logging for rdfkit using zerolog.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zerolog.Logger

func init() {
	// Library default: quiet unless a caller opts in.
	l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	logger = &l
}

// FileOptions configures the rotating log file sink.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

// Options configures Init.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means info.
	Level string
	// Human selects the console writer instead of JSON lines.
	Human bool
	// Output overrides stderr, mainly for tests.
	Output io.Writer
	// File, when Path is set, tees JSON lines into a rotating file.
	File FileOptions
}

// Init configures the global logger. It returns a closer for the file sink,
// which is a no-op when no file was requested.
func Init(opts Options) (func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lv, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = lv
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Human {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	closer := func() error { return nil }
	if opts.File.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxAge:     opts.File.MaxAgeDays,
			MaxBackups: opts.File.MaxBackups,
			Compress:   opts.File.Compress,
		}
		out = zerolog.MultiLevelWriter(out, rotator)
		closer = rotator.Close
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(level)
	logger = &l
	return closer, nil
}

// L returns the base logger.
func L() *zerolog.Logger {
	return logger
}

// With returns a logger with the component field set.
func With(component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// SetLogger allows overriding the global logger (useful for testing).
func SetLogger(l zerolog.Logger) {
	logger = &l
}
