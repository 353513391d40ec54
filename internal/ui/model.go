package ui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/config"
	"github.com/techdufus/taskboard/internal/drag"
	"github.com/techdufus/taskboard/internal/editor"
	"github.com/techdufus/taskboard/internal/virtual"
)

// Mode represents the current UI mode
type Mode string

const (
	ModeNormal Mode = "NORMAL"
	ModeDrag   Mode = "DRAG"
	ModeEdit   Mode = "EDIT"
)

const notifyDuration = 3 * time.Second

// Model is the main Bubbletea model. It owns the current board snapshot and
// replaces it wholesale after every change.
type Model struct {
	config *config.Config
	logger *log.Logger
	host   Host
	now    func() time.Time

	board  board.Board
	drag   *drag.Coordinator
	editor *editor.Editor
	form   taskForm
	keys   keyMap
	help   help.Model

	// UI state
	mode          Mode
	activeColumn  int
	activeTask    int
	width         int
	height        int
	scrollOffset  int   // horizontal scroll for columns
	columnOffsets []int // vertical scroll per column, in rows

	// Drag state. dragColumn/dragIndex is the keyboard target cursor; an
	// index equal to the column length means the column background.
	dragTask   board.Task
	dragTarget drag.Target
	mouseDrag  bool
	dragMoved  bool
	dragColumn int
	dragIndex  int

	// Overlay state
	showHelp    bool
	showConfirm bool
	confirmTask board.Task
	confirmFn   func() tea.Cmd
	declineFn   func()

	notification string
	notifySeq    int
}

// NewModel builds a model around an initial board. A nil host or logger is
// replaced by a no-op.
func NewModel(cfg *config.Config, b board.Board, host Host, logger *log.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if host == nil {
		host = NopHost{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		config:        cfg,
		logger:        logger.WithPrefix("ui"),
		host:          host,
		now:           time.Now,
		board:         b,
		drag:          drag.NewCoordinator(logger),
		editor:        editor.New(),
		form:          newTaskForm(),
		keys:          newKeyMap(),
		help:          help.New(),
		mode:          ModeNormal,
		columnOffsets: make([]int, len(b.Columns)),
	}
	return m
}

// Board returns the current snapshot.
func (m *Model) Board() board.Board {
	return m.board
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

type notificationMsg int

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.form.setWidth(msg.Width)
		m.ensureColumnVisible()
		for i := range m.columnOffsets {
			m.scrollColumn(i, 0)
		}
		m.ensureTaskVisible()
		return m, nil

	case tea.MouseMsg:
		if !m.config.UI.Mouse || m.showConfirm || m.showHelp {
			return m, nil
		}
		if m.mode == ModeNormal || (m.mode == ModeDrag && m.mouseDrag) {
			return m.handleMouse(msg)
		}
		return m, nil

	case notificationMsg:
		if int(msg) == m.notifySeq {
			m.notification = ""
		}
		return m, nil
	}

	if m.editor.IsOpen() {
		return m, m.form.update(msg)
	}
	return m, nil
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showConfirm {
		return m.handleConfirm(msg)
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case ModeEdit:
		return m.handleEditMode(msg)
	case ModeDrag:
		return m.handleDragMode(msg)
	}
	return m.handleNormalMode(msg)
}

// handleNormalMode processes keys in normal mode
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = true
	case key.Matches(msg, m.keys.moveLeft):
		m.moveColumn(-1)
	case key.Matches(msg, m.keys.moveRight):
		m.moveColumn(1)
	case key.Matches(msg, m.keys.moveDown):
		m.moveTask(1)
	case key.Matches(msg, m.keys.moveUp):
		m.moveTask(-1)
	case key.Matches(msg, m.keys.first):
		m.activeTask = 0
		m.ensureTaskVisible()
	case key.Matches(msg, m.keys.last):
		m.activeTask = max(len(m.columnTasks(m.activeColumn))-1, 0)
		m.ensureTaskVisible()
	case key.Matches(msg, m.keys.addTask):
		return m.createTask(m.activeColumn)
	case key.Matches(msg, m.keys.openTask):
		t, ok := m.selectedTask()
		if !ok {
			return m, m.notify("No card selected")
		}
		return m.openTask(t.ID)
	case key.Matches(msg, m.keys.deleteTask):
		return m.confirmDeleteTask()
	case key.Matches(msg, m.keys.grab):
		return m.startKeyboardDrag()
	}
	return m, nil
}

// handleConfirm processes keys in confirm dialog
func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.showConfirm = false
		fn := m.confirmFn
		m.confirmFn, m.declineFn = nil, nil
		if fn != nil {
			return m, fn()
		}
	case "n", "N", "esc":
		m.showConfirm = false
		fn := m.declineFn
		m.confirmFn, m.declineFn = nil, nil
		if fn != nil {
			fn()
		}
	}
	return m, nil
}

// confirmDelete asks before deleting t. onNo may be nil.
func (m *Model) confirmDelete(t board.Task, onYes func() tea.Cmd, onNo func()) {
	m.showConfirm = true
	m.confirmTask = t
	m.confirmFn = onYes
	m.declineFn = onNo
}

func (m *Model) confirmDeleteTask() (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, m.notify("No card selected")
	}
	m.confirmDelete(t, func() tea.Cmd {
		return m.deleteTask(t.ID)
	}, nil)
	return m, nil
}

func (m *Model) deleteTask(id board.TaskID) tea.Cmd {
	next, err := m.board.DeleteTask(id)
	if err != nil {
		m.logger.Debug("delete failed", "task", id, "err", err)
		return m.notify("Delete failed: " + err.Error())
	}
	m.board = next
	m.host.OnTaskDelete(id)
	m.clampSelection()
	return m.notify("Card deleted")
}

// createTask adds a placeholder card to the end of a column and opens it.
func (m *Model) createTask(col int) (tea.Model, tea.Cmd) {
	if col < 0 || col >= len(m.board.Columns) {
		return m, nil
	}
	columnID := m.board.Columns[col].ID
	t := board.NewTask("", m.now())
	next, err := m.board.AddTask(columnID, t)
	if err != nil {
		m.logger.Debug("create failed", "column", columnID, "err", err)
		return m, m.notify("Create failed: " + err.Error())
	}
	m.board = next
	m.host.OnTaskCreate(columnID)
	m.logger.Debug("task created", "task", t.ID, "column", columnID)
	m.selectTask(t.ID)
	return m.openEditor(t.ID)
}

// openTask reports a click to the host and opens the editor.
func (m *Model) openTask(id board.TaskID) (tea.Model, tea.Cmd) {
	t, ok := m.board.Task(id)
	if !ok {
		return m, nil
	}
	m.selectTask(id)
	m.host.OnTaskClick(t)
	return m.openEditor(id)
}

func (m *Model) openEditor(id board.TaskID) (tea.Model, tea.Cmd) {
	t, ok := m.board.Task(id)
	if !ok {
		return m, nil
	}
	m.editor.Open(t)
	m.mode = ModeEdit
	return m, m.form.load(m.editor.Draft(), m.board.Columns)
}

// Keyboard drag

func (m *Model) startKeyboardDrag() (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, m.notify("No card selected")
	}
	if _, ok := m.drag.Start(m.board, t.ID); !ok {
		return m, nil
	}
	m.mode = ModeDrag
	m.dragTask = t
	m.mouseDrag = false
	m.dragColumn = m.activeColumn
	m.dragIndex = m.activeTask
	m.dragTarget = m.keyboardTarget()
	return m, nil
}

func (m *Model) handleDragMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.drag.Cancel()
		m.resetDrag()
		return m, m.notify("Move cancelled")
	case m.mouseDrag:
		return m, nil
	case key.Matches(msg, m.keys.drop):
		return m.finishDrag(m.dragTarget)
	case key.Matches(msg, m.keys.moveLeft):
		m.moveDragColumn(-1)
	case key.Matches(msg, m.keys.moveRight):
		m.moveDragColumn(1)
	case key.Matches(msg, m.keys.moveUp):
		m.dragIndex = max(m.dragIndex-1, 0)
	case key.Matches(msg, m.keys.moveDown):
		m.dragIndex = min(m.dragIndex+1, len(m.columnTasks(m.dragColumn)))
	default:
		return m, nil
	}
	m.dragTarget = m.keyboardTarget()
	m.revealDragTarget()
	return m, nil
}

func (m *Model) moveDragColumn(delta int) {
	m.dragColumn = min(max(m.dragColumn+delta, 0), len(m.board.Columns)-1)
	m.dragIndex = len(m.columnTasks(m.dragColumn))
}

// keyboardTarget resolves the keyboard cursor to a drop target.
func (m *Model) keyboardTarget() drag.Target {
	if m.dragColumn < 0 || m.dragColumn >= len(m.board.Columns) {
		return nil
	}
	tasks := m.columnTasks(m.dragColumn)
	if m.dragIndex >= 0 && m.dragIndex < len(tasks) {
		return drag.TaskTarget{ID: tasks[m.dragIndex].ID}
	}
	return drag.ColumnTarget{ID: m.board.Columns[m.dragColumn].ID}
}

func (m *Model) revealDragTarget() {
	col := m.dragColumn
	if col < m.scrollOffset {
		m.scrollOffset = col
	} else if visible := m.visibleColumnCount(); col >= m.scrollOffset+visible {
		m.scrollOffset = col - visible + 1
	}
	v := m.columnView(col)
	if m.dragIndex < len(v.tasks) {
		top, h := v.cardSpan(m.dragIndex)
		m.setColumnScroll(col, virtual.ScrollToReveal(m.columnScroll(col), top, h, m.cardsHeight()))
	} else {
		m.setColumnScroll(col, v.total)
	}
}

// finishDrag hands the drop to the coordinator and applies the result.
func (m *Model) finishDrag(target drag.Target) (tea.Model, tea.Cmd) {
	id, ok := m.drag.Active()
	m.resetDrag()
	if !ok {
		return m, nil
	}
	res := m.drag.End(m.board, id, target)
	return m, m.applyDrop(res)
}

func (m *Model) resetDrag() {
	m.mode = ModeNormal
	m.dragTask = board.Task{}
	m.dragTarget = nil
	m.mouseDrag = false
	m.dragMoved = false
}

func (m *Model) applyDrop(res drag.Result) tea.Cmd {
	if !res.Changed() {
		return nil
	}
	switch res.Outcome {
	case drag.OutcomeMoved:
		m.board = res.Board
		status := res.To
		m.host.OnTaskUpdate(res.TaskID, board.Patch{Status: &status})
		m.selectTask(res.TaskID)
		col, _ := m.board.Column(res.To)
		return m.notify("Moved to " + col.Title)
	case drag.OutcomeReordered:
		m.board = res.Board
		col, _ := m.board.Column(res.To)
		m.host.OnColumnReorder(res.To, col.TaskIDs)
		m.selectTask(res.TaskID)
	}
	return nil
}

// Mouse

// handleMouse processes mouse events
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if h := m.hitTest(msg.X, msg.Y); h.column >= 0 {
			m.scrollColumn(h.column, -wheelStep)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if h := m.hitTest(msg.X, msg.Y); h.column >= 0 {
			m.scrollColumn(h.column, wheelStep)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mode != ModeNormal {
			return m, nil
		}
		h := m.hitTest(msg.X, msg.Y)
		switch h.kind {
		case hitCard:
			m.activeColumn, m.activeTask = h.column, h.task
			t, ok := m.drag.Start(m.board, h.id)
			if !ok {
				return m, nil
			}
			m.mode = ModeDrag
			m.mouseDrag = true
			m.dragMoved = false
			m.dragTask = t
			m.dragColumn = h.column
			m.dragIndex = h.task
			m.dragTarget = drag.TaskTarget{ID: h.id}
		case hitAdd:
			m.activeColumn = h.column
			return m.createTask(h.column)
		case hitColumn:
			m.activeColumn = h.column
			m.clampSelection()
		}

	case tea.MouseActionMotion:
		if !m.mouseDrag {
			return m, nil
		}
		if target := m.targetAt(msg.X, msg.Y); !drag.SameTarget(target, m.dragTarget) {
			m.dragTarget = target
			m.dragMoved = true
		}

	case tea.MouseActionRelease:
		if !m.mouseDrag {
			return m, nil
		}
		target := m.targetAt(msg.X, msg.Y)
		id, _ := m.drag.Active()
		if tt, ok := target.(drag.TaskTarget); ok && !m.dragMoved && tt.ID == id {
			// press and release on the same card is a click
			m.drag.Cancel()
			m.resetDrag()
			return m.openTask(id)
		}
		return m.finishDrag(target)
	}

	return m, nil
}

// Navigation

func (m *Model) moveColumn(delta int) {
	if len(m.board.Columns) == 0 {
		return
	}
	m.activeColumn = min(max(m.activeColumn+delta, 0), len(m.board.Columns)-1)
	m.activeTask = 0
	m.ensureColumnVisible()
	m.ensureTaskVisible()
}

func (m *Model) moveTask(delta int) {
	n := len(m.columnTasks(m.activeColumn))
	m.activeTask = min(max(m.activeTask+delta, 0), max(n-1, 0))
	m.ensureTaskVisible()
}

func (m *Model) ensureColumnVisible() {
	visibleCols := m.visibleColumnCount()

	if m.activeColumn < m.scrollOffset {
		m.scrollOffset = m.activeColumn
	} else if m.activeColumn >= m.scrollOffset+visibleCols {
		m.scrollOffset = m.activeColumn - visibleCols + 1
	}

	maxOffset := max(len(m.board.Columns)-visibleCols, 0)
	m.scrollOffset = min(max(m.scrollOffset, 0), maxOffset)
}

func (m *Model) ensureTaskVisible() {
	col := m.activeColumn
	v := m.columnView(col)
	if len(v.tasks) == 0 {
		m.setColumnScroll(col, 0)
		return
	}
	top, h := v.cardSpan(m.activeTask)
	m.setColumnScroll(col, virtual.ScrollToReveal(m.columnScroll(col), top, h, m.cardsHeight()))
}

func (m *Model) clampSelection() {
	if len(m.columnOffsets) != len(m.board.Columns) {
		m.columnOffsets = make([]int, len(m.board.Columns))
	}
	m.activeColumn = min(max(m.activeColumn, 0), max(len(m.board.Columns)-1, 0))
	m.activeTask = min(max(m.activeTask, 0), max(len(m.columnTasks(m.activeColumn))-1, 0))
	m.scrollColumn(m.activeColumn, 0)
}

// selectTask moves the cursor to the card with the given id.
func (m *Model) selectTask(id board.TaskID) {
	t, ok := m.board.Tasks[id]
	if !ok {
		m.clampSelection()
		return
	}
	col := m.board.ColumnIndex(t.Status)
	if col < 0 {
		return
	}
	c := m.board.Columns[col]
	m.activeColumn = col
	m.activeTask = max(c.IndexOf(id), 0)
	m.ensureColumnVisible()
	m.ensureTaskVisible()
}

// Helper methods

func (m *Model) columnTasks(col int) []board.Task {
	if col < 0 || col >= len(m.board.Columns) {
		return nil
	}
	return m.board.ColumnTasks(m.board.Columns[col].ID)
}

func (m *Model) selectedTask() (board.Task, bool) {
	tasks := m.columnTasks(m.activeColumn)
	if m.activeTask < 0 || m.activeTask >= len(tasks) {
		return board.Task{}, false
	}
	return tasks[m.activeTask], true
}

// dropColumn is the column the current drag target resolves to, or -1.
func (m *Model) dropColumn() int {
	switch t := m.dragTarget.(type) {
	case drag.ColumnTarget:
		return m.board.ColumnIndex(t.ID)
	case drag.TaskTarget:
		if task, ok := m.board.Tasks[t.ID]; ok {
			return m.board.ColumnIndex(task.Status)
		}
	}
	return -1
}

func (m *Model) notify(msg string) tea.Cmd {
	m.notification = msg
	m.notifySeq++
	seq := m.notifySeq
	return tea.Tick(notifyDuration, func(time.Time) tea.Msg {
		return notificationMsg(seq)
	})
}
