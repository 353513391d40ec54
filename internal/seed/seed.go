// Package seed reads and writes the files a board is started from.
//
// A seed lists columns in display order and tasks in the order they appear
// within their column. Task status names the column; missing ids and creation
// times are filled in when the board is built.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/techdufus/taskboard/internal/board"
)

// Format is a seed file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat accepts "json" or "toml".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown seed format %q (want json or toml)", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: seed files must end in .json or .toml", path)
	}
}

// File is the on-disk shape of a seed.
type File struct {
	Columns []ColumnSpec `json:"columns" toml:"columns"`
	Tasks   []board.Task `json:"tasks" toml:"tasks"`
}

// ColumnSpec describes one column in a seed.
type ColumnSpec struct {
	ID       board.ColumnID `json:"id" toml:"id"`
	Title    string         `json:"title" toml:"title"`
	Color    string         `json:"color,omitempty" toml:"color,omitempty"`
	MaxTasks int            `json:"max_tasks,omitempty" toml:"max_tasks,omitempty"`
}

// Load reads a seed file and builds a board from it.
func Load(path string) (board.Board, error) {
	f, err := ReadFile(path)
	if err != nil {
		return board.Board{}, err
	}
	b, err := Build(f, time.Now())
	if err != nil {
		return board.Board{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ReadFile decodes a seed file without building it.
func ReadFile(path string) (File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses seed data in the given format.
func Decode(data []byte, format Format) (File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("decode json seed: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("decode toml seed: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unknown seed format %q", format)
	}
	return f, nil
}

// Encode writes f to w in the given format.
func Encode(w io.Writer, f File, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(f)
	default:
		return fmt.Errorf("unknown seed format %q", format)
	}
}

// Build turns a seed into a validated board.
func Build(f File, now time.Time) (board.Board, error) {
	if len(f.Columns) == 0 {
		return board.Board{}, errors.New("seed has no columns")
	}

	columns := make([]board.Column, 0, len(f.Columns))
	for i, c := range f.Columns {
		if c.ID == "" {
			return board.Board{}, fmt.Errorf("columns[%d]: id is required", i)
		}
		title := c.Title
		if title == "" {
			title = string(c.ID)
		}
		columns = append(columns, board.Column{
			ID:       c.ID,
			Title:    title,
			Color:    c.Color,
			MaxTasks: c.MaxTasks,
		})
	}
	b := board.New(columns, nil)
	if err := b.Validate(); err != nil {
		return board.Board{}, err
	}

	for i, t := range f.Tasks {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			return board.Board{}, fmt.Errorf("tasks[%d]: title is required", i)
		}
		if t.ID == "" {
			t.ID = board.NewTaskID()
		}
		if _, err := board.ParsePriority(string(t.Priority)); err != nil {
			return board.Board{}, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		next, err := b.AddTask(t.Status, t)
		if err != nil {
			return board.Board{}, fmt.Errorf("tasks[%d] (%s): %w", i, t.ID, err)
		}
		b = next
	}

	return b, nil
}

// FromBoard captures a board as a seed, keeping column order.
func FromBoard(b board.Board) File {
	f := File{Columns: make([]ColumnSpec, 0, len(b.Columns))}
	for _, c := range b.Columns {
		f.Columns = append(f.Columns, ColumnSpec{
			ID:       c.ID,
			Title:    c.Title,
			Color:    c.Color,
			MaxTasks: c.MaxTasks,
		})
	}
	for _, tasks := range b.Project() {
		f.Tasks = append(f.Tasks, tasks...)
	}
	return f
}
