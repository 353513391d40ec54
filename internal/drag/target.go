package drag

import "github.com/techdufus/taskboard/internal/board"

// Target is where a dragged card was released. It is either a ColumnTarget
// or a TaskTarget; a nil Target means the card was dropped outside the board.
type Target interface {
	isTarget()
}

// ColumnTarget is a drop on a column's background.
type ColumnTarget struct {
	ID board.ColumnID
}

// TaskTarget is a drop on another card, meaning "put it where this card is".
type TaskTarget struct {
	ID board.TaskID
}

func (ColumnTarget) isTarget() {}
func (TaskTarget) isTarget()   {}

// SameTarget reports whether two targets point at the same thing.
func SameTarget(a, b Target) bool {
	switch a := a.(type) {
	case ColumnTarget:
		bt, ok := b.(ColumnTarget)
		return ok && a.ID == bt.ID
	case TaskTarget:
		bt, ok := b.(TaskTarget)
		return ok && a.ID == bt.ID
	default:
		return a == nil && b == nil
	}
}
