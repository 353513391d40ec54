package board

import (
	"errors"
	"fmt"
)

// Validate checks that every task sits in exactly one column matching its
// status and that columns hold no duplicate or unknown IDs.
func (b Board) Validate() error {
	var errs []error
	seen := make(map[TaskID]ColumnID)
	columnIDs := make(map[ColumnID]bool, len(b.Columns))

	for _, c := range b.Columns {
		if columnIDs[c.ID] {
			errs = append(errs, fmt.Errorf("column %q: duplicate column id", c.ID))
		}
		columnIDs[c.ID] = true

		for _, id := range c.TaskIDs {
			if prev, dup := seen[id]; dup {
				errs = append(errs, fmt.Errorf("task %q: listed in %q and %q", id, prev, c.ID))
				continue
			}
			seen[id] = c.ID

			t, ok := b.Tasks[id]
			if !ok {
				errs = append(errs, fmt.Errorf("column %q: unknown task %q", c.ID, id))
				continue
			}
			if t.Status != c.ID {
				errs = append(errs, fmt.Errorf("task %q: status %q but listed in %q", id, t.Status, c.ID))
			}
		}
	}

	for id, t := range b.Tasks {
		if t.ID != id {
			errs = append(errs, fmt.Errorf("task %q: keyed as %q", t.ID, id))
		}
		if _, ok := seen[id]; !ok {
			errs = append(errs, fmt.Errorf("task %q: not in any column", id))
		}
		if !columnIDs[t.Status] {
			errs = append(errs, fmt.Errorf("task %q: unknown status %q", id, t.Status))
		}
	}

	return errors.Join(errs...)
}
