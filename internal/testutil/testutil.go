package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/config"
	"github.com/techdufus/taskboard/internal/seed"
)

type TestEnv struct {
	ConfigDir string
	DataDir   string
	T         *testing.T
}

func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	baseDir := t.TempDir()
	configDir := filepath.Join(baseDir, "config")
	dataDir := filepath.Join(baseDir, "data")

	for _, dir := range []string{configDir, dataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("TASKBOARD_CONFIG_DIR", configDir)

	return &TestEnv{
		ConfigDir: configDir,
		DataDir:   dataDir,
		T:         t,
	}
}

func (e *TestEnv) ConfigPath() string {
	return filepath.Join(e.ConfigDir, "config.json")
}

func (e *TestEnv) WriteConfig(cfg *config.Config) {
	e.T.Helper()
	if err := cfg.Save(e.ConfigPath()); err != nil {
		e.T.Fatalf("failed to write test config: %v", err)
	}
}

func (e *TestEnv) LoadConfig() *config.Config {
	e.T.Helper()
	cfg, err := config.Load(e.ConfigPath())
	if err != nil {
		e.T.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// WriteSeed encodes f into DataDir. The format follows the file extension.
func (e *TestEnv) WriteSeed(name string, f seed.File) string {
	e.T.Helper()
	path := filepath.Join(e.DataDir, name)
	format, err := seed.FormatFromPath(path)
	if err != nil {
		e.T.Fatalf("bad seed name %q: %v", name, err)
	}

	var buf bytes.Buffer
	if err := seed.Encode(&buf, f, format); err != nil {
		e.T.Fatalf("failed to encode seed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		e.T.Fatalf("failed to write seed: %v", err)
	}
	return path
}

func (e *TestEnv) WriteSample(name string) string {
	e.T.Helper()
	return e.WriteSeed(name, seed.SampleFile(time.Now()))
}

func (e *TestEnv) AssertConsistent(b board.Board) {
	e.T.Helper()
	if err := b.Validate(); err != nil {
		e.T.Errorf("board is inconsistent: %v", err)
	}
}

func (e *TestEnv) AssertTaskCount(b board.Board, expected int) {
	e.T.Helper()
	if len(b.Tasks) != expected {
		e.T.Errorf("expected %d tasks, got %d", expected, len(b.Tasks))
	}
}

func (e *TestEnv) AssertTaskStatus(b board.Board, id board.TaskID, expected board.ColumnID) {
	e.T.Helper()
	t, ok := b.Task(id)
	if !ok {
		e.T.Fatalf("task %s not found", id)
	}
	if t.Status != expected {
		e.T.Errorf("task %s status = %s; want %s", id, t.Status, expected)
	}
}

func (e *TestEnv) RunCLI(args ...string) ([]byte, error) {
	e.T.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Env = append(os.Environ(), "TASKBOARD_CONFIG_DIR="+e.ConfigDir)
	return cmd.CombinedOutput()
}
