package seed

import (
	"fmt"
	"time"

	"github.com/techdufus/taskboard/internal/board"
)

var sampleColumns = []ColumnSpec{
	{ID: "todo", Title: "To Do", Color: "#89b4fa"},
	{ID: "in-progress", Title: "In Progress", Color: "#f9e2af", MaxTasks: 3},
	{ID: "review", Title: "Review", Color: "#cba6f7", MaxTasks: 2},
	{ID: "done", Title: "Done", Color: "#a6e3a1"},
}

// SampleFile returns the demo board as a seed. Due dates are relative to now.
func SampleFile(now time.Time) File {
	day := func(n int) *time.Time {
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, n)
		return &d
	}
	created := now.Add(-72 * time.Hour)

	tasks := []board.Task{
		{ID: "task-1", Title: "Design login screen", Description: "Wireframes for the new sign-in flow", Status: "todo", Priority: board.PriorityHigh, Assignee: "Ana Lima", Tags: []string{"design", "auth"}, DueDate: day(5)},
		{ID: "task-2", Title: "Set up CI pipeline", Status: "todo", Priority: board.PriorityMedium, Assignee: "Raj", Tags: []string{"infra"}},
		{ID: "task-3", Title: "Write API docs", Description: "Cover every public endpoint", Status: "todo", Priority: board.PriorityLow, Tags: []string{"docs"}},
		{ID: "task-4", Title: "Fix session timeout bug", Description: "Users get logged out after five minutes", Status: "in-progress", Priority: board.PriorityUrgent, Assignee: "Mei", Tags: []string{"bug", "auth", "backend", "p0"}, DueDate: day(-1)},
		{ID: "task-5", Title: "Migrate user table", Status: "in-progress", Priority: board.PriorityHigh, Assignee: "Raj", Tags: []string{"backend", "db"}, DueDate: day(2)},
		{ID: "task-6", Title: "Dark mode toggle", Status: "review", Priority: board.PriorityMedium, Assignee: "Ana Lima", Tags: []string{"frontend"}},
		{ID: "task-7", Title: "Release notes for v1.2", Status: "done", Priority: board.PriorityLow, Assignee: "Mei", Tags: []string{"docs"}},
		{ID: "task-8", Title: "Upgrade dependencies", Status: "done"},
	}
	for i := range tasks {
		tasks[i].CreatedAt = created.Add(time.Duration(i) * time.Hour)
	}

	return File{Columns: append([]ColumnSpec(nil), sampleColumns...), Tasks: tasks}
}

// Sample returns the demo board.
func Sample(now time.Time) board.Board {
	b, err := Build(SampleFile(now), now)
	if err != nil {
		panic(fmt.Sprintf("sample board: %v", err))
	}
	return b
}

var (
	generatedTags      = []string{"frontend", "backend", "bug", "docs", "infra", "design"}
	generatedAssignees = []string{"Ana Lima", "Raj", "Mei", "Sam", ""}
)

// GenerateFile returns a seed with n tasks spread over the sample columns.
// Most land in the first column so it crosses the virtualization threshold
// once n is large. Output is deterministic for a given n and now.
func GenerateFile(n int, now time.Time) File {
	if n < 0 {
		n = 0
	}
	f := File{Columns: append([]ColumnSpec(nil), sampleColumns...)}
	for i := range f.Columns {
		f.Columns[i].MaxTasks = 0
	}

	for i := 0; i < n; i++ {
		var status board.ColumnID
		switch i % 10 {
		case 0, 1, 2, 3, 4, 5:
			status = "todo"
		case 6, 7:
			status = "in-progress"
		case 8:
			status = "review"
		default:
			status = "done"
		}
		t := board.Task{
			ID:        board.TaskID(fmt.Sprintf("task-%04d", i+1)),
			Title:     fmt.Sprintf("Task %d", i+1),
			Status:    status,
			Priority:  board.Priorities[i%len(board.Priorities)],
			Assignee:  generatedAssignees[i%len(generatedAssignees)],
			Tags:      []string{generatedTags[i%len(generatedTags)]},
			CreatedAt: now.Add(-time.Duration(n-i) * time.Minute),
		}
		if i%7 == 0 {
			due := now.AddDate(0, 0, i%21-7)
			t.DueDate = &due
		}
		if i%3 == 0 {
			t.Description = fmt.Sprintf("Generated task number %d", i+1)
		}
		f.Tasks = append(f.Tasks, t)
	}
	return f
}

// Generate returns a board with n generated tasks.
func Generate(n int, now time.Time) board.Board {
	b, err := Build(GenerateFile(n, now), now)
	if err != nil {
		panic(fmt.Sprintf("generated board: %v", err))
	}
	return b
}
