package taskkit

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusArchived   Status = "archived"
)

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// statusTransitions lists the allowed target statuses for each status.
// Only completed work can be archived, and restoring from the archive
// reactivates the task. Self-transitions are intentionally absent.
var statusTransitions = map[Status][]Status{
	StatusTodo:       {StatusInProgress, StatusDone},
	StatusInProgress: {StatusTodo, StatusDone},
	StatusDone:       {StatusTodo, StatusArchived},
	StatusArchived:   {StatusTodo},
}

// Statuses returns all valid statuses in declaration order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone, StatusArchived}
}

// Priorities returns all valid priorities in declaration order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

func (s Status) String() string { return string(s) }

// Valid reports whether the status is one of the declared values.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether a task may move from this status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (p Priority) String() string { return string(p) }

// Valid reports whether the priority is one of the declared values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ParseStatus converts external string input into a Status. The input is
// trimmed and lowercased before matching, so "TODO" and " done " parse
// cleanly. Unknown values fail with INVALID_STATUS_VALUE listing the valid
// options.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, nil
	}
	return "", invalidStatusError(value)
}

// ParsePriority converts external string input into a Priority using the same
// normalization rules as ParseStatus.
func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	if p.Valid() {
		return p, nil
	}
	return "", invalidPriorityError(value)
}

func invalidStatusError(value string) *taskerr.Error {
	valid := make([]string, 0, 4)
	for _, v := range Statuses() {
		valid = append(valid, string(v))
	}
	return taskerr.NewField("status", fmt.Sprintf("Invalid status value: '%s'", value)).
		WithCode("INVALID_STATUS_VALUE").
		WithValue(value).
		WithDetails(map[string]any{
			"valid_statuses": valid,
			"hint":           "Status values are case-insensitive",
		})
}

func invalidPriorityError(value string) *taskerr.Error {
	valid := make([]string, 0, 4)
	for _, v := range Priorities() {
		valid = append(valid, string(v))
	}
	return taskerr.NewField("priority", fmt.Sprintf("Invalid priority value: '%s'", value)).
		WithCode("INVALID_PRIORITY_VALUE").
		WithValue(value).
		WithDetails(map[string]any{
			"valid_priorities": valid,
			"hint":             "Priority values are case-insensitive",
		})
}
