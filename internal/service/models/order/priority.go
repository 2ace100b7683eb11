package order

import "errors"

// Priority is the queue tier of an order, set at creation and immutable.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var ErrInvalidPriority = errors.New("invalid priority")

func (p Priority) String() string {
	return string(p)
}

// Rank orders priorities for the dispatch queue: urgent > high > normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 2
	case PriorityHigh:
		return 1
	default:
		return 0
	}
}

// ParsePriority parses a priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	default:
		return "", ErrInvalidPriority
	}
}
