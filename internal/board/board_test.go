package board

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func testBoard(t *testing.T, layout map[ColumnID][]TaskID, order ...ColumnID) Board {
	t.Helper()
	var columns []Column
	tasks := make(map[TaskID]Task)
	for _, cid := range order {
		columns = append(columns, Column{ID: cid, Title: string(cid), TaskIDs: layout[cid]})
		for _, tid := range layout[cid] {
			tasks[tid] = Task{ID: tid, Title: string(tid), Status: cid}
		}
	}
	b := New(columns, tasks)
	if err := b.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return b
}

func ids(b Board, c ColumnID) []TaskID {
	col, _ := b.Column(c)
	return col.TaskIDs
}

func TestMoveTask_AppendsToTarget(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1", "t2"}, "B": {}}, "A", "B")

	next, err := b.MoveTask("t1", "B")
	if err != nil {
		t.Fatalf("MoveTask() error: %v", err)
	}

	if got := ids(next, "A"); !slices.Equal(got, []TaskID{"t2"}) {
		t.Errorf("A = %v; want [t2]", got)
	}
	if got := ids(next, "B"); !slices.Equal(got, []TaskID{"t1"}) {
		t.Errorf("B = %v; want [t1]", got)
	}
	if next.Tasks["t1"].Status != "B" {
		t.Errorf("t1.Status = %q; want B", next.Tasks["t1"].Status)
	}
	if err := next.Validate(); err != nil {
		t.Errorf("Validate() after move: %v", err)
	}
}

func TestMoveTask_AppendsAfterExisting(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1"}, "B": {"t2", "t3"}}, "A", "B")

	next, err := b.MoveTask("t1", "B")
	if err != nil {
		t.Fatalf("MoveTask() error: %v", err)
	}
	if got := ids(next, "B"); !slices.Equal(got, []TaskID{"t2", "t3", "t1"}) {
		t.Errorf("B = %v; want [t2 t3 t1]", got)
	}
}

func TestMoveTask_SameColumnIsNoop(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1", "t2"}}, "A")

	next, err := b.MoveTask("t1", "A")
	if err != nil {
		t.Fatalf("MoveTask() error: %v", err)
	}
	if got := ids(next, "A"); !slices.Equal(got, []TaskID{"t1", "t2"}) {
		t.Errorf("A = %v; want unchanged", got)
	}
}

func TestMoveTask_Errors(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1"}}, "A")

	if _, err := b.MoveTask("missing", "A"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("MoveTask(missing) error = %v; want ErrTaskNotFound", err)
	}
	if _, err := b.MoveTask("t1", "Z"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("MoveTask(t1, Z) error = %v; want ErrColumnNotFound", err)
	}
}

func TestReorderTask(t *testing.T) {
	tests := []struct {
		name string
		id   TaskID
		over TaskID
		want []TaskID
	}{
		{"last onto first", "t3", "t1", []TaskID{"t3", "t1", "t2"}},
		{"first onto last", "t1", "t3", []TaskID{"t2", "t3", "t1"}},
		{"middle onto first", "t2", "t1", []TaskID{"t2", "t1", "t3"}},
		{"first onto middle", "t1", "t2", []TaskID{"t2", "t1", "t3"}},
		{"onto self", "t2", "t2", []TaskID{"t1", "t2", "t3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1", "t2", "t3"}}, "A")
			next, err := b.ReorderTask(tt.id, tt.over)
			if err != nil {
				t.Fatalf("ReorderTask() error: %v", err)
			}
			got := ids(next, "A")
			if !slices.Equal(got, tt.want) {
				t.Errorf("A = %v; want %v", got, tt.want)
			}
			if tt.id != tt.over {
				if idx := slices.Index(got, tt.id); idx != slices.Index(ids(b, "A"), tt.over) {
					t.Errorf("moved task landed at %d; want the target's original index", idx)
				}
			}
			sorted := slices.Clone(got)
			slices.Sort(sorted)
			if !slices.Equal(sorted, []TaskID{"t1", "t2", "t3"}) {
				t.Errorf("membership changed: %v", got)
			}
		})
	}
}

func TestReorderTask_DifferentColumns(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1"}, "B": {"t2"}}, "A", "B")

	if _, err := b.ReorderTask("t1", "t2"); !errors.Is(err, ErrNotSameColumn) {
		t.Errorf("ReorderTask() error = %v; want ErrNotSameColumn", err)
	}
}

func TestAddTask(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1"}, "C": {"t2"}}, "A", "C")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	task := NewTask("", now)
	if task.Title != DefaultTitle {
		t.Errorf("NewTask title = %q; want %q", task.Title, DefaultTitle)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("NewTask priority = %q; want medium", task.Priority)
	}

	next, err := b.AddTask("C", task)
	if err != nil {
		t.Fatalf("AddTask() error: %v", err)
	}
	if got := ids(next, "C"); !slices.Equal(got, []TaskID{"t2", task.ID}) {
		t.Errorf("C = %v; want new task appended", got)
	}
	if next.Tasks[task.ID].Status != "C" {
		t.Errorf("status = %q; want C", next.Tasks[task.ID].Status)
	}
	if err := next.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}

	if _, err := next.AddTask("C", task); !errors.Is(err, ErrDuplicateTask) {
		t.Errorf("second AddTask() error = %v; want ErrDuplicateTask", err)
	}
	if _, err := b.AddTask("nope", NewTask("x", now)); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("AddTask(nope) error = %v; want ErrColumnNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1", "t2"}, "B": {"t3"}}, "A", "B")

	next, err := b.DeleteTask("t1")
	if err != nil {
		t.Fatalf("DeleteTask() error: %v", err)
	}
	if _, ok := next.Tasks["t1"]; ok {
		t.Error("t1 still in task map")
	}
	for _, c := range next.Columns {
		if c.IndexOf("t1") >= 0 {
			t.Errorf("t1 still listed in column %q", c.ID)
		}
	}
	if err := next.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}

	if _, err := next.DeleteTask("t1"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteTask twice error = %v; want ErrTaskNotFound", err)
	}
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	b := testBoard(t, map[ColumnID][]TaskID{"A": {"t1", "t2", "t3"}, "B": {}}, "A", "B")
	title := "renamed"

	if _, err := b.MoveTask("t1", "B"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReorderTask("t3", "t1"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.DeleteTask("t2"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.UpdateTask("t1", Patch{Title: &title}); err != nil {
		t.Fatal(err)
	}

	if got := ids(b, "A"); !slices.Equal(got, []TaskID{"t1", "t2", "t3"}) {
		t.Errorf("receiver column A changed: %v", got)
	}
	if got := ids(b, "B"); len(got) != 0 {
		t.Errorf("receiver column B changed: %v", got)
	}
	if b.Tasks["t1"].Title != "t1" || b.Tasks["t1"].Status != "A" {
		t.Errorf("receiver task changed: %+v", b.Tasks["t1"])
	}
	if _, ok := b.Tasks["t2"]; !ok {
		t.Error("receiver lost t2")
	}
}

func TestColumnTasks_SkipsUnknownIDs(t *testing.T) {
	b := New(
		[]Column{{ID: "A", TaskIDs: []TaskID{"t1", "ghost", "t2"}}},
		map[TaskID]Task{
			"t1": {ID: "t1", Title: "one", Status: "A"},
			"t2": {ID: "t2", Title: "two", Status: "A"},
		},
	)

	got := b.ColumnTasks("A")
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("ColumnTasks() = %v; want [t1 t2]", got)
	}
	if err := b.Validate(); err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("Validate() = %v; want error naming ghost", err)
	}
	if got := b.ColumnTasks("missing"); got != nil {
		t.Errorf("ColumnTasks(missing) = %v; want nil", got)
	}
}

func TestValidate_DetectsViolations(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		wantSub string
	}{
		{
			name: "status mismatch",
			board: New([]Column{{ID: "A", TaskIDs: []TaskID{"t1"}}, {ID: "B"}},
				map[TaskID]Task{"t1": {ID: "t1", Status: "B"}}),
			wantSub: "status",
		},
		{
			name: "listed twice",
			board: New([]Column{{ID: "A", TaskIDs: []TaskID{"t1"}}, {ID: "B", TaskIDs: []TaskID{"t1"}}},
				map[TaskID]Task{"t1": {ID: "t1", Status: "A"}}),
			wantSub: "listed in",
		},
		{
			name: "orphan task",
			board: New([]Column{{ID: "A"}},
				map[TaskID]Task{"t1": {ID: "t1", Status: "A"}}),
			wantSub: "not in any column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.board.Validate()
			if err == nil {
				t.Fatal("Validate() = nil; want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Validate() = %q; want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestColumnOverLimit(t *testing.T) {
	tests := []struct {
		max   int
		count int
		want  bool
	}{
		{0, 10, false},
		{3, 3, false},
		{3, 4, true},
	}
	for _, tt := range tests {
		c := Column{MaxTasks: tt.max, TaskIDs: make([]TaskID, tt.count)}
		if got := c.OverLimit(); got != tt.want {
			t.Errorf("OverLimit(max=%d, count=%d) = %v; want %v", tt.max, tt.count, got, tt.want)
		}
	}
}

func TestTaskHelpers(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if (Task{DueDate: &past}).Overdue(now) != true {
		t.Error("past due date should be overdue")
	}
	if (Task{DueDate: &future}).Overdue(now) {
		t.Error("future due date should not be overdue")
	}
	if (Task{}).Overdue(now) {
		t.Error("no due date should not be overdue")
	}

	initials := map[string]string{
		"alice":  "AL",
		"b":      "B",
		"":       "",
		"élodie": "ÉL",
		" a\nb":  "AB",
	}
	for name, want := range initials {
		if got := (Task{Assignee: name}).Initials(); got != want {
			t.Errorf("Initials(%q) = %q; want %q", name, got, want)
		}
	}
}

func TestPriority(t *testing.T) {
	if PriorityUrgent.Next() != PriorityLow {
		t.Errorf("urgent.Next() = %q; want low", PriorityUrgent.Next())
	}
	if Priority("").Next() != PriorityLow {
		t.Errorf("unset.Next() = %q; want low", Priority("").Next())
	}
	if PriorityLow.Prev() != PriorityUrgent {
		t.Errorf("low.Prev() = %q; want urgent", PriorityLow.Prev())
	}
	if PriorityHigh.Rank() <= PriorityMedium.Rank() {
		t.Error("high should rank above medium")
	}
	if _, err := ParsePriority("critical"); err == nil {
		t.Error("ParsePriority(critical) should fail")
	}
	if p, err := ParsePriority("high"); err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority(high) = %q, %v", p, err)
	}
}
