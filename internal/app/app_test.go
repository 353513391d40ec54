package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/config"
	"github.com/techdufus/taskboard/internal/seed"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBoard(t *testing.T) {
	seedPath := writeFile(t, "board.json", `{"columns": [{"id": "a"}, {"id": "b"}], "tasks": [{"title": "x", "status": "b"}]}`)

	tests := []struct {
		name    string
		cfgSeed string
		src     Source
		columns int
		tasks   int
	}{
		{name: "config columns", columns: 4, tasks: 0},
		{name: "config seed", cfgSeed: seedPath, columns: 2, tasks: 1},
		{name: "flag seed wins", cfgSeed: "missing.json", src: Source{SeedPath: seedPath}, columns: 2, tasks: 1},
		{name: "sample", src: Source{Sample: true}, columns: 4, tasks: 8},
		{name: "generate", src: Source{Generate: 120}, columns: 4, tasks: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Board.SeedPath = tt.cfgSeed
			b, err := LoadBoard(cfg, tt.src, testNow)
			if err != nil {
				t.Fatalf("LoadBoard() error: %v", err)
			}
			if len(b.Columns) != tt.columns || len(b.Tasks) != tt.tasks {
				t.Errorf("board has %d columns, %d tasks; want %d, %d", len(b.Columns), len(b.Tasks), tt.columns, tt.tasks)
			}
			if err := b.Validate(); err != nil {
				t.Errorf("Validate(): %v", err)
			}
		})
	}
}

func TestLoadBoardErrors(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := LoadBoard(cfg, Source{Sample: true, Generate: 10}, testNow)
	if !errors.Is(err, errConflictingSources) {
		t.Errorf("conflicting sources error = %v", err)
	}

	_, err = LoadBoard(cfg, Source{SeedPath: filepath.Join(t.TempDir(), "nope.toml")}, testNow)
	if err == nil || !strings.Contains(err.Error(), "failed to load board") {
		t.Errorf("missing seed error = %v", err)
	}
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "board.toml", `
[[columns]]
id = "doing"
title = "Doing"
max_tasks = 1

[[columns]]
id = "done"
title = "Done"

[[tasks]]
title = "one"
status = "doing"
due_date = 2026-10-01T00:00:00Z

[[tasks]]
title = "two"
status = "doing"

[[tasks]]
title = "three"
status = "done"
`)

	r, err := Check(path, testNow)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if r.Tasks != 3 || r.Overdue != 1 {
		t.Errorf("report = %+v", r)
	}
	if want := []string{"Doing has 2 tasks (limit 1)"}; !slices.Equal(r.Warnings(), want) {
		t.Errorf("Warnings() = %v; want %v", r.Warnings(), want)
	}

	var out bytes.Buffer
	if err := r.Write(&out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"3 tasks, 2 columns", "Doing", "2/1", "1 overdue"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCheckInvalidSeed(t *testing.T) {
	path := writeFile(t, "board.json", `{"columns": [{"id": "todo"}], "tasks": [{"title": "x", "status": "later"}]}`)
	_, err := Check(path, testNow)
	if !errors.Is(err, board.ErrColumnNotFound) {
		t.Errorf("Check() error = %v; want %v", err, board.ErrColumnNotFound)
	}
}

func TestWriteSample(t *testing.T) {
	for _, format := range []seed.Format{seed.FormatJSON, seed.FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSample(&buf, format, 0, testNow); err != nil {
				t.Fatalf("WriteSample() error: %v", err)
			}
			path := writeFile(t, "board."+string(format), buf.String())
			b, err := seed.Load(path)
			if err != nil {
				t.Fatalf("seed.Load() error: %v", err)
			}
			if len(b.Tasks) != 8 {
				t.Errorf("len(Tasks) = %d; want 8", len(b.Tasks))
			}
		})
	}

	var buf bytes.Buffer
	if err := WriteSample(&buf, seed.FormatJSON, 25, testNow); err != nil {
		t.Fatal(err)
	}
	f, err := seed.Decode(buf.Bytes(), seed.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Tasks) != 25 {
		t.Errorf("generated %d tasks; want 25", len(f.Tasks))
	}
}

func TestLogHost(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter})
	h := NewLogHost(logger)

	title := "new"
	status := board.ColumnID("done")
	h.OnTaskCreate("todo")
	h.OnTaskUpdate("t1", board.Patch{Title: &title, Status: &status, ClearDueDate: true})
	h.OnColumnReorder("todo", []board.TaskID{"t2", "t1"})

	out := buf.String()
	for _, want := range []string{
		"prefix=host",
		`msg="task created" column=todo`,
		`msg="task updated" task=t1 fields=title,status,due_date`,
		`msg="column reordered" column=todo tasks=2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
