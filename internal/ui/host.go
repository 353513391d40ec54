package ui

import "github.com/techdufus/taskboard/internal/board"

// Host receives the board's outgoing events. The model has already applied
// each change to its own snapshot by the time a callback runs.
type Host interface {
	OnTaskClick(t board.Task)
	OnTaskCreate(columnID board.ColumnID)
	OnTaskUpdate(id board.TaskID, p board.Patch)
	OnTaskDelete(id board.TaskID)
	OnColumnReorder(columnID board.ColumnID, ids []board.TaskID)
}

// NopHost ignores every event.
type NopHost struct{}

func (NopHost) OnTaskClick(board.Task)                         {}
func (NopHost) OnTaskCreate(board.ColumnID)                    {}
func (NopHost) OnTaskUpdate(board.TaskID, board.Patch)         {}
func (NopHost) OnTaskDelete(board.TaskID)                      {}
func (NopHost) OnColumnReorder(board.ColumnID, []board.TaskID) {}
