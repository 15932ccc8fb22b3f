package taskkit

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

const maxListNameLen = 100

// TaskList is a named collection of tasks belonging to one owner. Task IDs
// within a list are unique; tasks without an assigned ID are exempt from the
// uniqueness rule.
type TaskList struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Tasks     []*Task   `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskListOption customizes NewTaskList.
type TaskListOption func(*TaskList)

// WithListID assigns an identity to the list.
func WithListID(id uuid.UUID) TaskListOption {
	return func(l *TaskList) { l.ID = id }
}

// WithTasks seeds the list with initial tasks.
func WithTasks(tasks ...*Task) TaskListOption {
	return func(l *TaskList) { l.Tasks = tasks }
}

// WithListCreatedAt overrides the creation timestamp (default now).
func WithListCreatedAt(createdAt time.Time) TaskListOption {
	return func(l *TaskList) { l.CreatedAt = createdAt }
}

// NewTaskList validates and builds a task list. The name is stored trimmed
// and the owner is normalized by the username checker. All failures are
// reported together as a taskerr.Collection.
func NewTaskList(name, owner string, opts ...TaskListOption) (*TaskList, error) {
	l := &TaskList{CreatedAt: time.Now()}
	for _, opt := range opts {
		opt(l)
	}

	err := validator.Batch(func(vc *validator.Context) error {
		trimmed, ok := validator.Value(vc, func() (string, error) {
			v, err := validator.NotEmpty("name", name)
			return v, recode(err, "TASKLIST_NAME_EMPTY")
		})
		if ok && utf8.RuneCountInString(trimmed) > maxListNameLen {
			vc.AddError(taskerr.NewField("name", fmt.Sprintf("Task list name cannot exceed %d characters", maxListNameLen)).
				WithCode("TASKLIST_NAME_TOO_LONG").
				WithValue(name).
				WithDetail("max_length", maxListNameLen).
				WithDetail("current_length", utf8.RuneCountInString(trimmed)))
		}
		l.Name = trimmed

		l.Owner, _ = validator.Value(vc, func() (string, error) {
			v, err := validator.Username(owner)
			if fe, isRecord := taskerr.AsError(err); isRecord {
				return v, fe.WithField("owner")
			}
			return v, err
		})

		l.checkInitialTasks(vc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// checkInitialTasks rejects nil entries and duplicate assigned IDs among the
// tasks the list was seeded with.
func (l *TaskList) checkInitialTasks(vc *validator.Context) {
	seen := make(map[uuid.UUID]bool)
	var duplicates []string
	reported := make(map[uuid.UUID]bool)

	for _, t := range l.Tasks {
		if t == nil {
			vc.AddError(taskerr.New("Task list cannot contain a nil task").WithField("tasks"))
			continue
		}
		if t.ID == uuid.Nil {
			continue
		}
		if seen[t.ID] && !reported[t.ID] {
			duplicates = append(duplicates, t.ID.String())
			reported[t.ID] = true
		}
		seen[t.ID] = true
	}

	if len(duplicates) > 0 {
		vc.AddError(taskerr.NewDuplicate("Duplicate task IDs found").
			WithCode("DUPLICATE_TASK_IDS_IN_LIST").
			WithDetail("duplicate_ids", duplicates).
			WithDetail("total_tasks", len(l.Tasks)).
			WithDetail("unique_ids", len(seen)).
			WithDetail("suggestion", "Ensure every task in the list has a unique ID or clear the IDs before adding"))
	}
}

// AddTask appends a task to the list, rejecting nil tasks and assigned IDs
// that already exist in the list.
func (l *TaskList) AddTask(t *Task) error {
	if t == nil {
		return taskerr.New("Cannot add a nil task to the list")
	}
	if t.ID != uuid.Nil {
		for _, existing := range l.Tasks {
			if existing != nil && existing.ID == t.ID {
				return taskerr.NewDuplicateTask(t.ID.String()).
					WithCode("DUPLICATE_TASK_IN_ADD").
					WithDetail("task_title", t.Title).
					WithDetail("existing_task_count", len(l.Tasks)).
					WithDetail("suggestion", "Use a unique task ID, or leave the ID unassigned to bypass the uniqueness rule")
			}
		}
	}
	l.Tasks = append(l.Tasks, t)
	return nil
}

// TaskByID returns the task with the given assigned ID.
func (l *TaskList) TaskByID(id uuid.UUID) (*Task, error) {
	if id != uuid.Nil {
		for _, t := range l.Tasks {
			if t != nil && t.ID == id {
				return t, nil
			}
		}
	}
	return nil, taskerr.NewTaskNotFound(id.String()).
		WithDetail("task_list_name", l.Name).
		WithDetail("task_count", len(l.Tasks))
}

// RemoveTask deletes the task with the given assigned ID from the list.
func (l *TaskList) RemoveTask(id uuid.UUID) error {
	if id != uuid.Nil {
		for i, t := range l.Tasks {
			if t != nil && t.ID == id {
				l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
				return nil
			}
		}
	}
	return taskerr.NewTaskNotFound(id.String()).
		WithDetail("task_list_name", l.Name).
		WithDetail("task_count", len(l.Tasks))
}

// TasksByStatus returns the tasks currently in the given status, preserving
// list order.
func (l *TaskList) TasksByStatus(s Status) []*Task {
	var out []*Task
	for _, t := range l.Tasks {
		if t != nil && t.Status == s {
			out = append(out, t)
		}
	}
	return out
}

// TasksByPriority returns the tasks with the given priority, preserving list
// order.
func (l *TaskList) TasksByPriority(p Priority) []*Task {
	var out []*Task
	for _, t := range l.Tasks {
		if t != nil && t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// OverdueTasks returns the tasks whose due date has passed as of now,
// preserving list order.
func (l *TaskList) OverdueTasks(now time.Time) []*Task {
	var out []*Task
	for _, t := range l.Tasks {
		if t != nil && t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}

// Map converts the list and its tasks to the serializable shape.
func (l *TaskList) Map() map[string]any {
	tasks := make([]map[string]any, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		if t != nil {
			tasks = append(tasks, t.Map())
		}
	}
	m := map[string]any{
		"name":       l.Name,
		"owner":      l.Owner,
		"tasks":      tasks,
		"task_count": len(tasks),
		"created_at": l.CreatedAt.Format(time.RFC3339),
	}
	if l.ID != uuid.Nil {
		m["id"] = l.ID.String()
	}
	return m
}
