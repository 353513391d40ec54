package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/virtual"
)

// Config holds the global application configuration
type Config struct {
	Board   BoardSettings `json:"board"`
	UI      UIConfig      `json:"ui"`
	Logging LoggingConfig `json:"logging"`
}

// BoardSettings controls where the initial board comes from
type BoardSettings struct {
	SeedPath string         `json:"seed_path"` // JSON or TOML seed; empty uses Columns
	Columns  []ColumnConfig `json:"columns"`
}

// ColumnConfig describes one column of an empty board
type ColumnConfig struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	MaxTasks int    `json:"max_tasks"`
}

// UIConfig holds UI-related preferences
type UIConfig struct {
	CardHeight       int  `json:"card_height"`       // row estimate used for virtualized columns
	VirtualThreshold int  `json:"virtual_threshold"` // columns with more tasks are windowed
	VirtualBuffer    int  `json:"virtual_buffer"`    // extra cards kept above and below the viewport
	MinColumnWidth   int  `json:"min_column_width"`
	Mouse            bool `json:"mouse"`
}

// LoggingConfig controls the log file written while the board is open
type LoggingConfig struct {
	Level string `json:"level"` // debug | info | warn | error
	File  string `json:"file"`  // empty means <config dir>/taskboard.log
}

func defaultColumns() []ColumnConfig {
	return []ColumnConfig{
		{ID: "todo", Title: "To Do", Color: "#89b4fa"},
		{ID: "in-progress", Title: "In Progress", Color: "#f9e2af", MaxTasks: 3},
		{ID: "review", Title: "Review", Color: "#cba6f7", MaxTasks: 2},
		{ID: "done", Title: "Done", Color: "#a6e3a1"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Board: BoardSettings{
			Columns: defaultColumns(),
		},
		UI: UIConfig{
			CardHeight:       6,
			VirtualThreshold: virtual.DefaultThreshold,
			VirtualBuffer:    virtual.DefaultBuffer,
			MinColumnWidth:   24,
			Mouse:            true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the configuration directory path.
// TASKBOARD_CONFIG_DIR overrides the default.
func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taskboard"), nil
}

// ConfigPath returns the default config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		if msg := formatJSONError(err); msg != "" {
			return nil, fmt.Errorf("%s: %s", path, msg)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings the board cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.UI.CardHeight < 3 {
		errs = append(errs, fmt.Errorf("ui.card_height must be at least 3, got %d", c.UI.CardHeight))
	}
	if c.UI.VirtualThreshold < 0 {
		errs = append(errs, fmt.Errorf("ui.virtual_threshold must not be negative, got %d", c.UI.VirtualThreshold))
	}
	if c.UI.VirtualBuffer < 1 {
		errs = append(errs, fmt.Errorf("ui.virtual_buffer must be at least 1, got %d", c.UI.VirtualBuffer))
	}
	if c.UI.MinColumnWidth < 10 {
		errs = append(errs, fmt.Errorf("ui.min_column_width must be at least 10, got %d", c.UI.MinColumnWidth))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	seen := make(map[string]bool)
	for i, col := range c.Board.Columns {
		if col.ID == "" {
			errs = append(errs, fmt.Errorf("board.columns[%d]: id is required", i))
			continue
		}
		if seen[col.ID] {
			errs = append(errs, fmt.Errorf("board.columns[%d]: duplicate id %q", i, col.ID))
		}
		seen[col.ID] = true
		if col.MaxTasks < 0 {
			errs = append(errs, fmt.Errorf("board.columns[%d]: max_tasks must not be negative", i))
		}
	}
	if c.Board.SeedPath == "" && len(c.Board.Columns) == 0 {
		errs = append(errs, errors.New("board: either seed_path or columns must be set"))
	}

	return errors.Join(errs...)
}

// EmptyBoard builds a board with the configured columns and no tasks
func (c *Config) EmptyBoard() board.Board {
	columns := make([]board.Column, 0, len(c.Board.Columns))
	for _, col := range c.Board.Columns {
		title := col.Title
		if title == "" {
			title = col.ID
		}
		columns = append(columns, board.Column{
			ID:       board.ColumnID(col.ID),
			Title:    title,
			Color:    col.Color,
			MaxTasks: col.MaxTasks,
		})
	}
	return board.New(columns, nil)
}

// LogPath returns the log file location
func (c *Config) LogPath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskboard.log"), nil
}

// formatJSONError attempts to provide better JSON error context
func formatJSONError(err error) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("invalid JSON at byte %d: %s", syntaxErr.Offset, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("field %q expects %s but got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}

	return ""
}
