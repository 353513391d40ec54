package board

import (
	"slices"
	"strings"
	"time"
)

// Patch is a partial task update. Nil fields are left unchanged.
type Patch struct {
	Title        *string
	Description  *string
	Status       *ColumnID
	Priority     *Priority
	Assignee     *string
	Tags         *[]string
	DueDate      *time.Time
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Assignee == nil && p.Tags == nil &&
		p.DueDate == nil && !p.ClearDueDate
}

// Diff returns the patch that turns from into to. ID and CreatedAt are ignored.
func Diff(from, to Task) Patch {
	var p Patch
	if from.Title != to.Title {
		p.Title = &to.Title
	}
	if from.Description != to.Description {
		p.Description = &to.Description
	}
	if from.Status != to.Status {
		p.Status = &to.Status
	}
	if from.Priority != to.Priority {
		p.Priority = &to.Priority
	}
	if from.Assignee != to.Assignee {
		p.Assignee = &to.Assignee
	}
	if !slices.Equal(from.Tags, to.Tags) {
		tags := slices.Clone(to.Tags)
		p.Tags = &tags
	}
	switch {
	case to.DueDate == nil && from.DueDate != nil:
		p.ClearDueDate = true
	case to.DueDate != nil && (from.DueDate == nil || !from.DueDate.Equal(*to.DueDate)):
		due := *to.DueDate
		p.DueDate = &due
	}
	return p
}

// UpdateTask merges a patch into a task. A status change moves the task to the
// end of the new column, exactly like MoveTask.
func (b Board) UpdateTask(id TaskID, p Patch) (Board, error) {
	t, ok := b.Tasks[id]
	if !ok {
		return b, ErrTaskNotFound
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return b, ErrEmptyTitle
	}

	next := b
	if p.Status != nil && *p.Status != t.Status {
		var err error
		next, err = b.MoveTask(id, *p.Status)
		if err != nil {
			return b, err
		}
	} else {
		next = b.clone()
	}

	t = next.Tasks[id].clone()
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Tags != nil {
		t.Tags = slices.Clone(*p.Tags)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	next.Tasks[id] = t
	return next, nil
}
