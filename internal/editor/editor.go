// Package editor holds the draft state behind the task detail modal.
package editor

import (
	"slices"
	"strings"
	"time"

	"github.com/techdufus/taskboard/internal/board"
)

// State is where the editor is in its lifecycle.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateConfirmDelete
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateConfirmDelete:
		return "confirm-delete"
	}
	return "unknown"
}

// Field is an input in the editor form.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldPriority
	FieldStatus
	FieldAssignee
	FieldTags
	FieldDueDate
)

// Fields lists the form fields in tab order.
var Fields = []Field{FieldTitle, FieldDescription, FieldPriority, FieldStatus, FieldAssignee, FieldTags, FieldDueDate}

// CommitsOnEnter reports whether pressing enter in f saves the task.
// The description is multi-line, so enter there inserts a newline.
func CommitsOnEnter(f Field) bool {
	return f != FieldDescription
}

// Editor keeps an editable copy of one task.
type Editor struct {
	state    State
	original board.Task
	draft    board.Task
}

func New() *Editor {
	return &Editor{}
}

// State returns the current lifecycle state.
func (e *Editor) State() State {
	return e.state
}

// IsOpen reports whether the modal is showing, including the delete prompt.
func (e *Editor) IsOpen() bool {
	return e.state != StateClosed
}

// TaskID is the task being edited, or empty when closed.
func (e *Editor) TaskID() board.TaskID {
	if e.state == StateClosed {
		return ""
	}
	return e.original.ID
}

// Open starts editing t. The draft is reset only when t is a different task
// than the one already open.
func (e *Editor) Open(t board.Task) {
	if e.state != StateClosed && e.original.ID == t.ID {
		e.state = StateOpen
		return
	}
	e.original = t
	e.draft = copyTask(t)
	e.state = StateOpen
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() board.Task {
	return copyTask(e.draft)
}

// Original returns the task as it was when the editor opened.
func (e *Editor) Original() board.Task {
	return copyTask(e.original)
}

// Dirty reports whether the draft differs from the original.
func (e *Editor) Dirty() bool {
	return !board.Diff(e.original, e.draft).IsEmpty()
}

func (e *Editor) SetTitle(s string) { e.draft.Title = s }
func (e *Editor) SetDescription(s string) { e.draft.Description = s }
func (e *Editor) SetPriority(p board.Priority) { e.draft.Priority = p }
func (e *Editor) SetStatus(id board.ColumnID) { e.draft.Status = id }
func (e *Editor) SetAssignee(s string) { e.draft.Assignee = strings.TrimSpace(s) }
func (e *Editor) SetDueDate(due *time.Time) { e.draft.DueDate = due }
func (e *Editor) SetTags(tags []string) { e.draft.Tags = normalizeTags(tags) }
func (e *Editor) SetTagsFromText(text string) { e.SetTags(strings.Split(text, ",")) }

// Save applies the draft to b. A status change moves the task to the end of
// its new column. On error the editor stays open and b is returned as is.
func (e *Editor) Save(b board.Board) (board.Board, board.Patch, error) {
	if e.state == StateClosed {
		return b, board.Patch{}, nil
	}
	patch := board.Diff(e.original, e.draft)
	if strings.TrimSpace(e.draft.Title) == "" {
		return b, patch, board.ErrEmptyTitle
	}
	if patch.IsEmpty() {
		e.close()
		return b, patch, nil
	}
	next, err := b.UpdateTask(e.original.ID, patch)
	if err != nil {
		return b, patch, err
	}
	e.close()
	return next, patch, nil
}

// Cancel discards the draft. A task that still carries the placeholder title
// was never named, so it is removed from the board.
func (e *Editor) Cancel(b board.Board) (board.Board, bool) {
	if e.state == StateClosed {
		return b, false
	}
	id := e.original.ID
	e.close()

	t, ok := b.Tasks[id]
	if !ok || t.Title != board.DefaultTitle {
		return b, false
	}
	next, err := b.DeleteTask(id)
	if err != nil {
		return b, false
	}
	return next, true
}

// RequestDelete asks for confirmation before deleting.
func (e *Editor) RequestDelete() {
	if e.state == StateOpen {
		e.state = StateConfirmDelete
	}
}

// DeclineDelete returns to editing without changes.
func (e *Editor) DeclineDelete() {
	if e.state == StateConfirmDelete {
		e.state = StateOpen
	}
}

// ConfirmDelete removes the task from b and closes the editor.
func (e *Editor) ConfirmDelete(b board.Board) (board.Board, error) {
	if e.state != StateConfirmDelete {
		return b, nil
	}
	next, err := b.DeleteTask(e.original.ID)
	e.close()
	if err != nil {
		return b, err
	}
	return next, nil
}

func (e *Editor) close() {
	e.state = StateClosed
	e.original = board.Task{}
	e.draft = board.Task{}
}

func copyTask(t board.Task) board.Task {
	t.Tags = slices.Clone(t.Tags)
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
