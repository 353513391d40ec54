package board

import "fmt"

// Priority is the urgency of a task. The zero value means unset.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParsePriority accepts one of the known priority names or an empty string.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return "", nil
	}
	p := Priority(s)
	if p.Rank() < 0 {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// Rank orders priorities; unset is -1.
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if known == p {
			return i
		}
	}
	return -1
}

// Next returns the next higher priority, wrapping around. Unset becomes low.
func (p Priority) Next() Priority {
	return Priorities[(p.Rank()+1)%len(Priorities)]
}

// Prev returns the next lower priority, wrapping around. Unset becomes urgent.
func (p Priority) Prev() Priority {
	r := p.Rank()
	if r <= 0 {
		return Priorities[len(Priorities)-1]
	}
	return Priorities[r-1]
}
