package ui

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/editor"
)

const dueLayout = "2006-01-02"

var errBadDueDate = errors.New("due date must be YYYY-MM-DD")

// taskForm holds the inputs of the task detail modal. The editor owns the
// draft; the form only mirrors it.
type taskForm struct {
	field    editor.Field
	title    textinput.Model
	desc     textarea.Model
	assignee textinput.Model
	tags     textinput.Model
	due      textinput.Model
	columns  []board.Column
}

func newTaskForm() taskForm {
	ti := textinput.New()
	ti.Placeholder = board.DefaultTitle
	ti.CharLimit = 120
	ti.Width = 40

	di := textarea.New()
	di.Placeholder = "Optional description..."
	di.CharLimit = 1000
	di.SetWidth(40)
	di.SetHeight(4)
	di.ShowLineNumbers = false

	ai := textinput.New()
	ai.Placeholder = "Unassigned"
	ai.CharLimit = 60
	ai.Width = 40

	tg := textinput.New()
	tg.Placeholder = "comma, separated, tags"
	tg.CharLimit = 200
	tg.Width = 40

	du := textinput.New()
	du.Placeholder = "YYYY-MM-DD"
	du.CharLimit = len(dueLayout)
	du.Width = 12

	return taskForm{
		title:    ti,
		desc:     di,
		assignee: ai,
		tags:     tg,
		due:      du,
	}
}

func (f *taskForm) load(t board.Task, columns []board.Column) tea.Cmd {
	f.columns = columns
	f.field = editor.FieldTitle
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	f.assignee.SetValue(t.Assignee)
	f.tags.SetValue(strings.Join(t.Tags, ", "))
	f.due.SetValue(formatDue(t.DueDate))
	return f.focus()
}

func (f *taskForm) setWidth(width int) {
	w := min(max(width-20, 20), 60)
	f.title.Width = w
	f.desc.SetWidth(w)
	f.assignee.Width = w
	f.tags.Width = w
}

func (f *taskForm) blurAll() {
	f.title.Blur()
	f.desc.Blur()
	f.assignee.Blur()
	f.tags.Blur()
	f.due.Blur()
}

func (f *taskForm) focus() tea.Cmd {
	f.blurAll()
	switch f.field {
	case editor.FieldTitle:
		return f.title.Focus()
	case editor.FieldDescription:
		return f.desc.Focus()
	case editor.FieldAssignee:
		return f.assignee.Focus()
	case editor.FieldTags:
		return f.tags.Focus()
	case editor.FieldDueDate:
		return f.due.Focus()
	}
	return nil
}

func (f *taskForm) step(delta int) tea.Cmd {
	i := slices.Index(editor.Fields, f.field)
	n := len(editor.Fields)
	f.field = editor.Fields[((i+delta)%n+n)%n]
	return f.focus()
}

// update routes a message to the focused text input.
func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.field {
	case editor.FieldTitle:
		f.title, cmd = f.title.Update(msg)
	case editor.FieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case editor.FieldAssignee:
		f.assignee, cmd = f.assignee.Update(msg)
	case editor.FieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case editor.FieldDueDate:
		f.due, cmd = f.due.Update(msg)
	}
	return cmd
}

func formatDue(due *time.Time) string {
	if due == nil {
		return ""
	}
	return due.Format(dueLayout)
}

// parseDue reads a YYYY-MM-DD date in local time. Empty clears the date.
func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dueLayout, s, time.Local)
	if err != nil {
		return nil, errBadDueDate
	}
	return &d, nil
}

// handleEditMode processes keys while the task modal is open
func (m *Model) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.cancelEditor()
	case "ctrl+s":
		return m.saveEditor()
	case "ctrl+d":
		return m.requestEditorDelete()
	case "tab":
		return m, m.form.step(1)
	case "shift+tab":
		return m, m.form.step(-1)
	case "enter":
		if editor.CommitsOnEnter(m.form.field) {
			return m.saveEditor()
		}
	}

	draft := m.editor.Draft()
	switch m.form.field {
	case editor.FieldPriority:
		switch msg.String() {
		case "left", "h":
			m.editor.SetPriority(draft.Priority.Prev())
		case "right", "l", " ":
			m.editor.SetPriority(draft.Priority.Next())
		}
		return m, nil
	case editor.FieldStatus:
		switch msg.String() {
		case "left", "h":
			m.editor.SetStatus(m.form.cycleStatus(draft.Status, -1))
		case "right", "l", " ":
			m.editor.SetStatus(m.form.cycleStatus(draft.Status, 1))
		}
		return m, nil
	}

	cmd := m.form.update(msg)
	m.syncDraft()
	return m, cmd
}

func (f *taskForm) cycleStatus(current board.ColumnID, delta int) board.ColumnID {
	n := len(f.columns)
	if n == 0 {
		return current
	}
	i := slices.IndexFunc(f.columns, func(c board.Column) bool { return c.ID == current })
	if i < 0 {
		return f.columns[0].ID
	}
	return f.columns[((i+delta)%n+n)%n].ID
}

// syncDraft copies the focused text input into the editor draft.
func (m *Model) syncDraft() {
	switch m.form.field {
	case editor.FieldTitle:
		m.editor.SetTitle(m.form.title.Value())
	case editor.FieldDescription:
		m.editor.SetDescription(m.form.desc.Value())
	case editor.FieldAssignee:
		m.editor.SetAssignee(m.form.assignee.Value())
	case editor.FieldTags:
		m.editor.SetTagsFromText(m.form.tags.Value())
	}
}

func (m *Model) saveEditor() (tea.Model, tea.Cmd) {
	if m.form.due.Value() != formatDue(m.editor.Original().DueDate) {
		due, err := parseDue(m.form.due.Value())
		if err != nil {
			return m, m.notify("Due date must be YYYY-MM-DD")
		}
		m.editor.SetDueDate(due)
	}

	id := m.editor.TaskID()
	next, patch, err := m.editor.Save(m.board)
	if err != nil {
		m.logger.Debug("save failed", "task", id, "err", err)
		if errors.Is(err, board.ErrEmptyTitle) {
			return m, m.notify("Title cannot be empty")
		}
		return m, m.notify("Save failed: " + err.Error())
	}

	m.board = next
	m.mode = ModeNormal
	m.form.blurAll()
	if patch.IsEmpty() {
		return m, nil
	}
	m.host.OnTaskUpdate(id, patch)
	m.logger.Debug("task updated", "task", id)
	m.selectTask(id)
	return m, m.notify("Saved: " + m.board.Tasks[id].Title)
}

func (m *Model) cancelEditor() (tea.Model, tea.Cmd) {
	id := m.editor.TaskID()
	dirty := m.editor.Dirty()
	next, deleted := m.editor.Cancel(m.board)
	m.board = next
	m.mode = ModeNormal
	m.form.blurAll()
	if deleted {
		m.host.OnTaskDelete(id)
		m.logger.Debug("discarded unnamed task", "task", id)
		m.clampSelection()
		return m, nil
	}
	if dirty {
		return m, m.notify("Changes discarded")
	}
	return m, nil
}

func (m *Model) requestEditorDelete() (tea.Model, tea.Cmd) {
	m.editor.RequestDelete()
	m.confirmDelete(m.editor.Original(), func() tea.Cmd {
		id := m.editor.TaskID()
		next, err := m.editor.ConfirmDelete(m.board)
		m.mode = ModeNormal
		m.form.blurAll()
		if err != nil {
			m.logger.Debug("delete failed", "task", id, "err", err)
			return m.notify("Delete failed: " + err.Error())
		}
		m.board = next
		m.host.OnTaskDelete(id)
		m.clampSelection()
		return m.notify("Card deleted")
	}, m.editor.DeclineDelete)
	return m, nil
}
