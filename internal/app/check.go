package app

import (
	"fmt"
	"io"
	"time"

	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/seed"
)

// ColumnReport is one line of a check summary.
type ColumnReport struct {
	ID        board.ColumnID
	Title     string
	Count     int
	MaxTasks  int
	OverLimit bool
}

// Report summarizes a seed file.
type Report struct {
	Path    string
	Tasks   int
	Overdue int
	Columns []ColumnReport
}

// Warnings returns one message per column over its WIP limit.
func (r Report) Warnings() []string {
	var out []string
	for _, c := range r.Columns {
		if c.OverLimit {
			out = append(out, fmt.Sprintf("%s has %d tasks (limit %d)", c.Title, c.Count, c.MaxTasks))
		}
	}
	return out
}

// Write prints the report as a small table.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s: %d tasks, %d columns\n\n", r.Path, r.Tasks, len(r.Columns)); err != nil {
		return err
	}
	for _, c := range r.Columns {
		count := fmt.Sprintf("%d", c.Count)
		if c.MaxTasks > 0 {
			count = fmt.Sprintf("%d/%d", c.Count, c.MaxTasks)
		}
		if _, err := fmt.Fprintf(w, "  %-20s %s\n", c.Title, count); err != nil {
			return err
		}
	}
	if r.Overdue > 0 {
		if _, err := fmt.Fprintf(w, "\n%d overdue\n", r.Overdue); err != nil {
			return err
		}
	}
	return nil
}

// Check loads a seed file, validates the resulting board and summarizes it.
func Check(path string, now time.Time) (Report, error) {
	f, err := seed.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	b, err := seed.Build(f, now)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}

	r := Report{Path: path, Tasks: len(b.Tasks)}
	for _, c := range b.Columns {
		r.Columns = append(r.Columns, ColumnReport{
			ID:        c.ID,
			Title:     c.Title,
			Count:     len(c.TaskIDs),
			MaxTasks:  c.MaxTasks,
			OverLimit: c.OverLimit(),
		})
	}
	for _, t := range b.Tasks {
		if t.Overdue(now) {
			r.Overdue++
		}
	}
	return r, nil
}

// WriteSample writes the built-in sample, or a generated board of n tasks
// when n > 0, as a seed file.
func WriteSample(w io.Writer, format seed.Format, n int, now time.Time) error {
	f := seed.SampleFile(now)
	if n > 0 {
		f = seed.GenerateFile(n, now)
	}
	return seed.Encode(w, f, format)
}
