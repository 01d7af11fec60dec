// Package todo is an in-memory task list. Nothing here is persisted.
package todo

import (
	"fmt"
	"io"
)

// Status is the progress of a todo item.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

// ParseStatus maps "in_progress" and "completed" to their statuses.
// Anything else is StatusPending.
func ParseStatus(s string) Status {
	switch s {
	case "in_progress":
		return StatusInProgress
	case "completed":
		return StatusCompleted
	default:
		return StatusPending
	}
}

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Priority ranks a todo item.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// ParsePriority maps "low" and "high" to their priorities.
// Anything else, including the empty string, is PriorityMedium.
func ParsePriority(s string) Priority {
	switch s {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "medium"
	}
}

// Item is one task record.
type Item struct {
	ID       string
	Task     string
	Status   Status
	Priority Priority
}

// String renders "[id] task (status, priority)".
func (i Item) String() string {
	return fmt.Sprintf("[%s] %s (%s, %s)", i.ID, i.Task, i.Status, i.Priority)
}

// List holds items in insertion order. IDs are not required to be unique;
// lookups act on the first match.
type List struct {
	items []Item
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add appends a pending item.
func (l *List) Add(id, task string, priority Priority) {
	l.items = append(l.items, Item{ID: id, Task: task, Status: StatusPending, Priority: priority})
}

// UpdateStatus sets the status of the first item with id.
// It reports false, changing nothing, when no item matches.
func (l *List) UpdateStatus(id string, status Status) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Status = status
			return true
		}
	}
	return false
}

// Get returns the first item with id.
func (l *List) Get(id string) (Item, bool) {
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Items returns a copy of all items in insertion order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Display writes one line per item.
func (l *List) Display(w io.Writer) {
	for _, item := range l.items {
		fmt.Fprintln(w, item)
	}
}
