package drag

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/techdufus/taskboard/internal/board"
)

// Outcome describes what a drop did to the board.
type Outcome int

const (
	// OutcomeAborted means there was no drop target.
	OutcomeAborted Outcome = iota
	// OutcomeNoop means the drop resolved but changed nothing.
	OutcomeNoop
	// OutcomeMoved means the task moved to the end of another column.
	OutcomeMoved
	// OutcomeReordered means the task changed position inside its column.
	OutcomeReordered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAborted:
		return "aborted"
	case OutcomeNoop:
		return "noop"
	case OutcomeMoved:
		return "moved"
	case OutcomeReordered:
		return "reordered"
	}
	return "unknown"
}

// Result is the board after a drop plus what happened.
type Result struct {
	Board   board.Board
	Outcome Outcome
	TaskID  board.TaskID
	From    board.ColumnID
	To      board.ColumnID
	Index   int
}

// Changed reports whether the drop produced a new board.
func (r Result) Changed() bool {
	return r.Outcome == OutcomeMoved || r.Outcome == OutcomeReordered
}

// Coordinator turns drag-start and drag-end signals into board changes.
// Only one drag can be active at a time.
type Coordinator struct {
	active board.TaskID
	logger *log.Logger
}

func NewCoordinator(logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{logger: logger.WithPrefix("drag")}
}

// Start records the dragged task and returns it for the floating preview.
func (c *Coordinator) Start(b board.Board, id board.TaskID) (board.Task, bool) {
	t, ok := b.Task(id)
	if !ok {
		c.logger.Debug("drag start ignored", "task", id, "reason", "unknown task")
		c.active = ""
		return board.Task{}, false
	}
	c.active = id
	c.logger.Debug("drag start", "task", id, "column", t.Status)
	return t, true
}

// Active returns the task being dragged, if any.
func (c *Coordinator) Active() (board.TaskID, bool) {
	return c.active, c.active != ""
}

// Cancel clears the active drag without touching the board.
func (c *Coordinator) Cancel() {
	c.active = ""
}

// End finishes a drag. A nil target aborts; a drop into another column
// appends the task there; a drop on another card in the same column moves
// the task to that card's position.
func (c *Coordinator) End(b board.Board, id board.TaskID, over Target) Result {
	c.active = ""
	res := Result{Board: b, Outcome: OutcomeAborted, TaskID: id}

	if over == nil {
		c.logger.Debug("drag aborted", "task", id, "reason", "no drop target")
		return res
	}

	res.Outcome = OutcomeNoop
	t, ok := b.Tasks[id]
	if !ok {
		c.logger.Debug("drop ignored", "task", id, "reason", "unknown task")
		return res
	}
	res.From = t.Status

	var overTask board.TaskID
	switch target := over.(type) {
	case ColumnTarget:
		res.To = target.ID
	case TaskTarget:
		ot, ok := b.Tasks[target.ID]
		if !ok {
			c.logger.Debug("drop ignored", "task", id, "over", target.ID, "reason", "unknown target task")
			return res
		}
		res.To = ot.Status
		overTask = target.ID
	}
	if _, ok := b.Column(res.To); !ok {
		c.logger.Debug("drop ignored", "task", id, "column", res.To, "reason", "unknown column")
		res.To = ""
		return res
	}

	if res.To != res.From {
		next, err := b.MoveTask(id, res.To)
		if err != nil {
			c.logger.Debug("move failed", "task", id, "err", err)
			return res
		}
		res.Board = next
		res.Outcome = OutcomeMoved
		col, _ := next.Column(res.To)
		res.Index = col.IndexOf(id)
		c.logger.Debug("task moved", "task", id, "from", res.From, "to", res.To, "index", res.Index)
		return res
	}

	if overTask == "" || overTask == id {
		col, _ := b.Column(res.From)
		res.Index = col.IndexOf(id)
		return res
	}

	next, err := b.ReorderTask(id, overTask)
	if err != nil {
		c.logger.Debug("reorder failed", "task", id, "over", overTask, "err", err)
		return res
	}
	res.Board = next
	res.Outcome = OutcomeReordered
	col, _ := next.Column(res.To)
	res.Index = col.IndexOf(id)
	c.logger.Debug("task reordered", "task", id, "column", res.To, "index", res.Index)
	return res
}
