// Package telemetry builds the application logger.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

const prefix = "cardiz"

// New returns a logger writing to the file at path, appending to it. An
// empty path discards all output, since the TUI owns the terminal. The
// returned closer must be closed when the program exits.
func New(path, level string) (*clog.Logger, io.Closer, error) {
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	if path == "" {
		return clog.New(io.Discard), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := clog.NewWithOptions(f, clog.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, f, nil
}

// NewStderr returns a logger for line mode, where stderr is free. It logs
// warnings and above unless debug is set.
func NewStderr(w io.Writer, debug bool) *clog.Logger {
	logger := clog.NewWithOptions(w, clog.Options{Prefix: prefix, Level: clog.WarnLevel})
	if debug {
		logger.SetLevel(clog.DebugLevel)
	}
	return logger
}
