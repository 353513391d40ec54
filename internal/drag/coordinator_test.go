package drag

import (
	"slices"
	"testing"

	"github.com/techdufus/taskboard/internal/board"
)

func fixture(t *testing.T) board.Board {
	t.Helper()
	b := board.New(
		[]board.Column{
			{ID: "A", TaskIDs: []board.TaskID{"t1", "t2", "t3"}},
			{ID: "B", TaskIDs: []board.TaskID{"t4"}},
			{ID: "C"},
		},
		map[board.TaskID]board.Task{
			"t1": {ID: "t1", Title: "one", Status: "A"},
			"t2": {ID: "t2", Title: "two", Status: "A"},
			"t3": {ID: "t3", Title: "three", Status: "A"},
			"t4": {ID: "t4", Title: "four", Status: "B"},
		},
	)
	if err := b.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return b
}

func columnIDs(b board.Board, id board.ColumnID) []board.TaskID {
	c, _ := b.Column(id)
	return c.TaskIDs
}

func TestStartRecordsActiveTask(t *testing.T) {
	c := NewCoordinator(nil)
	b := fixture(t)

	task, ok := c.Start(b, "t2")
	if !ok || task.ID != "t2" {
		t.Fatalf("Start() = %v, %v; want t2", task.ID, ok)
	}
	if id, ok := c.Active(); !ok || id != "t2" {
		t.Errorf("Active() = %q, %v; want t2", id, ok)
	}

	c.End(b, "t2", nil)
	if _, ok := c.Active(); ok {
		t.Error("End() should clear the active task")
	}

	if _, ok := c.Start(b, "ghost"); ok {
		t.Error("Start(ghost) should fail")
	}
	if _, ok := c.Active(); ok {
		t.Error("unknown task should not become active")
	}
}

func TestEnd(t *testing.T) {
	tests := []struct {
		name    string
		task    board.TaskID
		over    Target
		outcome Outcome
		want    map[board.ColumnID][]board.TaskID
		index   int
	}{
		{
			name:    "no target aborts",
			task:    "t1",
			over:    nil,
			outcome: OutcomeAborted,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t1", "t2", "t3"}},
		},
		{
			name:    "onto empty column appends",
			task:    "t1",
			over:    ColumnTarget{ID: "C"},
			outcome: OutcomeMoved,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t2", "t3"}, "C": {"t1"}},
			index:   0,
		},
		{
			name:    "onto task in other column appends at end",
			task:    "t1",
			over:    TaskTarget{ID: "t4"},
			outcome: OutcomeMoved,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t2", "t3"}, "B": {"t4", "t1"}},
			index:   1,
		},
		{
			name:    "onto earlier task in same column",
			task:    "t3",
			over:    TaskTarget{ID: "t1"},
			outcome: OutcomeReordered,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t3", "t1", "t2"}},
			index:   0,
		},
		{
			name:    "onto later task in same column",
			task:    "t1",
			over:    TaskTarget{ID: "t3"},
			outcome: OutcomeReordered,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t2", "t3", "t1"}},
			index:   2,
		},
		{
			name:    "onto self",
			task:    "t2",
			over:    TaskTarget{ID: "t2"},
			outcome: OutcomeNoop,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t1", "t2", "t3"}},
			index:   1,
		},
		{
			name:    "onto own column background",
			task:    "t2",
			over:    ColumnTarget{ID: "A"},
			outcome: OutcomeNoop,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t1", "t2", "t3"}},
			index:   1,
		},
		{
			name:    "unknown column",
			task:    "t1",
			over:    ColumnTarget{ID: "Z"},
			outcome: OutcomeNoop,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t1", "t2", "t3"}},
		},
		{
			name:    "unknown target task",
			task:    "t1",
			over:    TaskTarget{ID: "ghost"},
			outcome: OutcomeNoop,
			want:    map[board.ColumnID][]board.TaskID{"A": {"t1", "t2", "t3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fixture(t)
			c := NewCoordinator(nil)
			c.Start(b, tt.task)

			res := c.End(b, tt.task, tt.over)
			if res.Outcome != tt.outcome {
				t.Fatalf("Outcome = %v; want %v", res.Outcome, tt.outcome)
			}
			for col, want := range tt.want {
				if got := columnIDs(res.Board, col); !slices.Equal(got, want) {
					t.Errorf("column %s = %v; want %v", col, got, want)
				}
			}
			if res.Changed() && res.Index != tt.index {
				t.Errorf("Index = %d; want %d", res.Index, tt.index)
			}
			if err := res.Board.Validate(); err != nil {
				t.Errorf("Validate(): %v", err)
			}
			if got := columnIDs(b, "A"); !slices.Equal(got, []board.TaskID{"t1", "t2", "t3"}) {
				t.Errorf("input board mutated: %v", got)
			}
		})
	}
}

func TestEnd_MoveUpdatesStatus(t *testing.T) {
	b := board.New(
		[]board.Column{{ID: "A", TaskIDs: []board.TaskID{"t1", "t2"}}, {ID: "B"}},
		map[board.TaskID]board.Task{
			"t1": {ID: "t1", Status: "A"},
			"t2": {ID: "t2", Status: "A"},
		},
	)
	c := NewCoordinator(nil)
	c.Start(b, "t1")

	res := c.End(b, "t1", ColumnTarget{ID: "B"})
	if res.From != "A" || res.To != "B" {
		t.Errorf("From/To = %s/%s; want A/B", res.From, res.To)
	}
	if got := res.Board.Tasks["t1"].Status; got != "B" {
		t.Errorf("t1.Status = %q; want B", got)
	}
	if got := columnIDs(res.Board, "A"); !slices.Equal(got, []board.TaskID{"t2"}) {
		t.Errorf("A = %v; want [t2]", got)
	}
	if got := columnIDs(res.Board, "B"); !slices.Equal(got, []board.TaskID{"t1"}) {
		t.Errorf("B = %v; want [t1]", got)
	}
}

func TestSameTarget(t *testing.T) {
	tests := []struct {
		a, b Target
		want bool
	}{
		{nil, nil, true},
		{ColumnTarget{ID: "A"}, ColumnTarget{ID: "A"}, true},
		{ColumnTarget{ID: "A"}, ColumnTarget{ID: "B"}, false},
		{TaskTarget{ID: "t1"}, TaskTarget{ID: "t1"}, true},
		{TaskTarget{ID: "A"}, ColumnTarget{ID: "A"}, false},
		{ColumnTarget{ID: "A"}, nil, false},
	}
	for _, tt := range tests {
		if got := SameTarget(tt.a, tt.b); got != tt.want {
			t.Errorf("SameTarget(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
