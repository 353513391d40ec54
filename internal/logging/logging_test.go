package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/techdufus/taskboard/internal/config"
)

func TestNewWritesLogfmtToFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "board.log")
	cfg.Logging.Level = "debug"

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if l.Path() != cfg.Logging.File {
		t.Errorf("Path() = %q; want %q", l.Path(), cfg.Logging.File)
	}

	l.Debug("task moved", "task", "t1", "to", "done")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"level=debug", "prefix=taskboard", `msg="task moved"`, "task=t1", "to=done"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.File = filepath.Join(t.TempDir(), "board.log")
	cfg.Logging.Level = "warn"

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown")
	l.Close()

	data, _ := os.ReadFile(cfg.Logging.File)
	if strings.Contains(string(data), "hidden") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("warn line missing")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.File = filepath.Join(t.TempDir(), "board.log")
	cfg.Logging.Level = "chatty"

	if _, err := New(cfg); err == nil {
		t.Error("New() should reject an unknown level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	if l.Path() != "" {
		t.Errorf("Path() = %q; want empty", l.Path())
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
