package board

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// DefaultTitle is the placeholder title given to freshly created tasks.
// The editor uses it to recognise a task that was never named.
const DefaultTitle = "New Task"

// TaskID is a unique identifier for a task
type TaskID string

// NewTaskID generates a new unique task ID
func NewTaskID() TaskID {
	return TaskID(uuid.New().String())
}

// ColumnID identifies a column. A task's status is the ID of its column.
type ColumnID string

// Task represents a unit of work
type Task struct {
	ID          TaskID     `json:"id" toml:"id"`
	Title       string     `json:"title" toml:"title"`
	Description string     `json:"description,omitempty" toml:"description,omitempty"`
	Status      ColumnID   `json:"status" toml:"status"`
	Priority    Priority   `json:"priority,omitempty" toml:"priority,omitempty"`
	Assignee    string     `json:"assignee,omitempty" toml:"assignee,omitempty"`
	Tags        []string   `json:"tags,omitempty" toml:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at" toml:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty" toml:"due_date,omitempty"`
}

// NewTask creates a task with defaults. It is not on a board until AddTask.
func NewTask(title string, now time.Time) Task {
	if title == "" {
		title = DefaultTitle
	}
	return Task{
		ID:        NewTaskID(),
		Title:     title,
		Priority:  PriorityMedium,
		CreatedAt: now,
	}
}

// Overdue reports whether the task has a due date before now.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// Initials returns the first two letters of the assignee, upper-cased.
func (t Task) Initials() string {
	var out []rune
	for _, r := range t.Assignee {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

func (t Task) clone() Task {
	t.Tags = slices.Clone(t.Tags)
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// Column represents a kanban column
type Column struct {
	ID       ColumnID `json:"id" toml:"id"`
	Title    string   `json:"title" toml:"title"`
	Color    string   `json:"color" toml:"color"`
	TaskIDs  []TaskID `json:"task_ids" toml:"task_ids"`
	MaxTasks int      `json:"max_tasks,omitempty" toml:"max_tasks,omitempty"`
}

// OverLimit reports whether the column holds more tasks than its soft WIP limit.
func (c Column) OverLimit() bool {
	return c.MaxTasks > 0 && len(c.TaskIDs) > c.MaxTasks
}

// IndexOf returns the position of id in the column, or -1.
func (c Column) IndexOf(id TaskID) int {
	return slices.Index(c.TaskIDs, id)
}

func (c Column) clone() Column {
	c.TaskIDs = slices.Clone(c.TaskIDs)
	return c
}

// Board is an immutable snapshot of columns and tasks. Operations return a
// new Board and never modify the receiver.
type Board struct {
	Columns []Column        `json:"columns"`
	Tasks   map[TaskID]Task `json:"tasks"`
}

// New builds a board from copies of columns and tasks.
func New(columns []Column, tasks map[TaskID]Task) Board {
	b := Board{
		Columns: make([]Column, len(columns)),
		Tasks:   make(map[TaskID]Task, len(tasks)),
	}
	for i, c := range columns {
		b.Columns[i] = c.clone()
	}
	for id, t := range tasks {
		b.Tasks[id] = t.clone()
	}
	return b
}

func (b Board) clone() Board {
	return New(b.Columns, b.Tasks)
}

// Task returns the task with the given ID.
func (b Board) Task(id TaskID) (Task, bool) {
	t, ok := b.Tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// Column returns the column with the given ID.
func (b Board) Column(id ColumnID) (Column, bool) {
	i := b.ColumnIndex(id)
	if i < 0 {
		return Column{}, false
	}
	return b.Columns[i].clone(), true
}

// ColumnIndex returns the position of the column in the board, or -1.
func (b Board) ColumnIndex(id ColumnID) int {
	for i, c := range b.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ColumnTasks returns the tasks of a column in display order. IDs without a
// task entry are skipped.
func (b Board) ColumnTasks(id ColumnID) []Task {
	i := b.ColumnIndex(id)
	if i < 0 {
		return nil
	}
	tasks := make([]Task, 0, len(b.Columns[i].TaskIDs))
	for _, tid := range b.Columns[i].TaskIDs {
		if t, ok := b.Tasks[tid]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Project returns ColumnTasks for every column, in column order.
func (b Board) Project() [][]Task {
	out := make([][]Task, len(b.Columns))
	for i, c := range b.Columns {
		out[i] = b.ColumnTasks(c.ID)
	}
	return out
}

// AddTask places t at the end of the given column. The task's status is set
// to the column.
func (b Board) AddTask(columnID ColumnID, t Task) (Board, error) {
	if _, exists := b.Tasks[t.ID]; exists {
		return b, ErrDuplicateTask
	}
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return b, ErrColumnNotFound
	}

	next := b.clone()
	t = t.clone()
	t.Status = columnID
	next.Tasks[t.ID] = t
	next.Columns[ci].TaskIDs = append(next.Columns[ci].TaskIDs, t.ID)
	return next, nil
}

// MoveTask moves a task to the end of another column and updates its status.
// Moving within the same column is a no-op.
func (b Board) MoveTask(id TaskID, columnID ColumnID) (Board, error) {
	t, ok := b.Tasks[id]
	if !ok {
		return b, ErrTaskNotFound
	}
	to := b.ColumnIndex(columnID)
	if to < 0 {
		return b, ErrColumnNotFound
	}
	if t.Status == columnID && b.Columns[to].IndexOf(id) >= 0 {
		return b, nil
	}

	next := b.clone()
	for i := range next.Columns {
		next.Columns[i].TaskIDs = slices.DeleteFunc(next.Columns[i].TaskIDs, func(tid TaskID) bool {
			return tid == id
		})
	}
	next.Columns[to].TaskIDs = append(next.Columns[to].TaskIDs, id)

	t = t.clone()
	t.Status = columnID
	next.Tasks[id] = t
	return next, nil
}

// ReorderTask moves id to the position currently held by overID in the same
// column. Everything between shifts by one.
func (b Board) ReorderTask(id, overID TaskID) (Board, error) {
	t, ok := b.Tasks[id]
	if !ok {
		return b, ErrTaskNotFound
	}
	over, ok := b.Tasks[overID]
	if !ok {
		return b, ErrTaskNotFound
	}
	if t.Status != over.Status {
		return b, ErrNotSameColumn
	}
	if id == overID {
		return b, nil
	}
	ci := b.ColumnIndex(t.Status)
	if ci < 0 {
		return b, ErrColumnNotFound
	}
	from := b.Columns[ci].IndexOf(id)
	to := b.Columns[ci].IndexOf(overID)
	if from < 0 || to < 0 {
		return b, ErrTaskNotFound
	}

	next := b.clone()
	next.Columns[ci].TaskIDs = moveIndex(next.Columns[ci].TaskIDs, from, to)
	return next, nil
}

// moveIndex removes the element at from and inserts it at to.
func moveIndex(ids []TaskID, from, to int) []TaskID {
	id := ids[from]
	ids = slices.Delete(ids, from, from+1)
	return slices.Insert(ids, to, id)
}

// DeleteTask removes a task from the task map and from its column.
func (b Board) DeleteTask(id TaskID) (Board, error) {
	if _, ok := b.Tasks[id]; !ok {
		return b, ErrTaskNotFound
	}

	next := b.clone()
	delete(next.Tasks, id)
	for i := range next.Columns {
		next.Columns[i].TaskIDs = slices.DeleteFunc(next.Columns[i].TaskIDs, func(tid TaskID) bool {
			return tid == id
		})
	}
	return next, nil
}
