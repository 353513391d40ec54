package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/config"
	"github.com/techdufus/taskboard/internal/seed"
	"github.com/techdufus/taskboard/internal/ui"
)

var errConflictingSources = errors.New("--board, --sample and --generate are mutually exclusive")

// Source selects where the initial board comes from. The zero value falls
// back to the config: its seed path, else its column list.
type Source struct {
	SeedPath string
	Sample   bool
	Generate int
}

// LoadBoard resolves the initial board for a run.
func LoadBoard(cfg *config.Config, src Source, now time.Time) (board.Board, error) {
	picked := 0
	if src.SeedPath != "" {
		picked++
	}
	if src.Sample {
		picked++
	}
	if src.Generate > 0 {
		picked++
	}
	if picked > 1 {
		return board.Board{}, errConflictingSources
	}

	switch {
	case src.Sample:
		return seed.Sample(now), nil
	case src.Generate > 0:
		return seed.Generate(src.Generate, now), nil
	}

	path := src.SeedPath
	if path == "" {
		path = cfg.Board.SeedPath
	}
	if path == "" {
		return cfg.EmptyBoard(), nil
	}

	b, err := seed.Load(path)
	if err != nil {
		return board.Board{}, fmt.Errorf("failed to load board: %w", err)
	}
	return b, nil
}

// Run starts the TUI application
func Run(cfg *config.Config, b board.Board, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	model := ui.NewModel(cfg, b, NewLogHost(logger), logger)

	logger.Info("board opened", "columns", len(b.Columns), "tasks", len(b.Tasks))

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return err
	}

	final := model.Board()
	logger.Info("board closed", "tasks", len(final.Tasks))
	if err := final.Validate(); err != nil {
		logger.Error("board left inconsistent", "err", err)
	}
	return nil
}

// LogHost is the ui.Host used by the CLI. It has no persistence, so every
// event is only recorded in the log.
type LogHost struct {
	logger *log.Logger
}

func NewLogHost(logger *log.Logger) *LogHost {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LogHost{logger: logger.WithPrefix("host")}
}

func (h *LogHost) OnTaskClick(t board.Task) {
	h.logger.Info("task opened", "task", string(t.ID), "title", t.Title)
}

func (h *LogHost) OnTaskCreate(columnID board.ColumnID) {
	h.logger.Info("task created", "column", string(columnID))
}

func (h *LogHost) OnTaskUpdate(id board.TaskID, p board.Patch) {
	h.logger.Info("task updated", "task", string(id), "fields", strings.Join(patchFields(p), ","))
}

func (h *LogHost) OnTaskDelete(id board.TaskID) {
	h.logger.Info("task deleted", "task", string(id))
}

func (h *LogHost) OnColumnReorder(columnID board.ColumnID, ids []board.TaskID) {
	h.logger.Info("column reordered", "column", string(columnID), "tasks", len(ids))
}

// patchFields lists the names of the fields a patch sets.
func patchFields(p board.Patch) []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Priority != nil {
		fields = append(fields, "priority")
	}
	if p.Assignee != nil {
		fields = append(fields, "assignee")
	}
	if p.Tags != nil {
		fields = append(fields, "tags")
	}
	if p.DueDate != nil || p.ClearDueDate {
		fields = append(fields, "due_date")
	}
	return fields
}
