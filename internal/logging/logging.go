// Package logging builds the file logger used while the board owns the terminal.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	charmLog "github.com/charmbracelet/log"

	"github.com/techdufus/taskboard/internal/config"
)

const appName = "taskboard"

// Logger wraps a charm logger together with the file it writes to.
type Logger struct {
	*charmLog.Logger
	path      string
	closeFile func() error
}

// New opens the configured log file and returns a logfmt logger writing to it.
// Nothing is written to the terminal; the TUI has the screen.
func New(cfg *config.Config) (*Logger, error) {
	level, err := charmLog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Logging.Level, err)
	}

	path, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve log file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		Logger:    newLogger(f, level),
		path:      path,
		closeFile: f.Close,
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: newLogger(io.Discard, charmLog.ErrorLevel)}
}

func newLogger(w io.Writer, level charmLog.Level) *charmLog.Logger {
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
}

// Path returns the log file path, or "" for a discard logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	err := l.closeFile()
	l.closeFile = nil
	return err
}
