// Package logging builds the charmbracelet loggers used across the platform.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	Level  string // debug, info, warn, error (default info)
	Prefix string
	File   string // Log file path; empty writes to Output
	Output io.Writer
}

// New creates a logger. The returned closer releases the log file, if any.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(opts.Level)
	if opts.Level == "" {
		level, err = log.InfoLevel, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	out := opts.Output
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if mkErr := os.MkdirAll(filepath.Dir(opts.File), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("logging: cannot create directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("logging: cannot open %s: %w", opts.File, openErr)
		}
		out, closer = f, f
	}
	if out == nil {
		out = os.Stderr
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
// Used by terminal UIs that own the screen and by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
