package taskkit

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000

	// maxDuePastDays bounds how old a due date may be before it is treated
	// as a data entry error rather than an overdue task.
	maxDuePastDays = 365
)

// Task is a single unit of work. Build tasks with NewTask so the field rules
// and the status/completion invariants hold; a Task with uuid.Nil ID has not
// been assigned an identity yet.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Tags        []Tag      `json:"tags,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskOption customizes NewTask.
type TaskOption func(*Task)

// WithID assigns an identity to the task.
func WithID(id uuid.UUID) TaskOption {
	return func(t *Task) { t.ID = id }
}

// WithDescription sets the free-form description.
func WithDescription(description string) TaskOption {
	return func(t *Task) { t.Description = description }
}

// WithStatus overrides the initial status (default StatusTodo).
func WithStatus(status Status) TaskOption {
	return func(t *Task) { t.Status = status }
}

// WithPriority overrides the initial priority (default PriorityMedium).
func WithPriority(priority Priority) TaskOption {
	return func(t *Task) { t.Priority = priority }
}

// WithTags attaches tags to the task.
func WithTags(tags ...Tag) TaskOption {
	return func(t *Task) { t.Tags = tags }
}

// WithDueDate sets the due date.
func WithDueDate(due time.Time) TaskOption {
	return func(t *Task) { t.DueDate = &due }
}

// WithCreatedAt overrides the creation timestamp (default now). Used when
// rehydrating tasks from storage or import.
func WithCreatedAt(createdAt time.Time) TaskOption {
	return func(t *Task) { t.CreatedAt = createdAt }
}

// WithCompletedAt sets the completion timestamp. Required when constructing
// a task directly in the archived status.
func WithCompletedAt(completedAt time.Time) TaskOption {
	return func(t *Task) { t.CompletedAt = &completedAt }
}

// NewTask validates and builds a task. Field failures across all rules are
// accumulated and returned together as a taskerr.Collection. The completion
// timestamp is kept consistent with the status: done tasks get one set
// automatically, active tasks have it cleared, archived tasks must already
// carry one.
func NewTask(title string, opts ...TaskOption) (*Task, error) {
	t := &Task{
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}

	err := validator.Batch(func(vc *validator.Context) error {
		trimmed, ok := validator.Value(vc, func() (string, error) {
			v, err := validator.NotEmpty("title", title)
			return v, recode(err, "TASK_TITLE_EMPTY")
		})
		if ok && utf8.RuneCountInString(trimmed) > maxTitleLen {
			vc.AddError(taskerr.NewField("title", fmt.Sprintf("Task title cannot exceed %d characters", maxTitleLen)).
				WithCode("TITLE_TOO_LONG").
				WithValue(title).
				WithDetail("max_length", maxTitleLen).
				WithDetail("current_length", utf8.RuneCountInString(trimmed)))
		}
		t.Title = trimmed

		if utf8.RuneCountInString(t.Description) > maxDescriptionLen {
			vc.AddError(taskerr.NewField("description", fmt.Sprintf("Task description cannot exceed %d characters", maxDescriptionLen)).
				WithCode("DESCRIPTION_TOO_LONG").
				WithDetail("max_length", maxDescriptionLen).
				WithDetail("current_length", utf8.RuneCountInString(t.Description)))
		}

		if !t.Status.Valid() {
			vc.AddError(invalidStatusError(string(t.Status)))
		}
		if !t.Priority.Valid() {
			vc.AddError(invalidPriorityError(string(t.Priority)))
		}

		if t.DueDate != nil {
			vc.Validate(t.checkDueDate)
		}

		switch t.Status {
		case StatusDone:
			if t.CompletedAt == nil {
				now := time.Now()
				t.CompletedAt = &now
			}
		case StatusArchived:
			if t.CompletedAt == nil {
				vc.AddError(archivedWithoutCompletionError())
			}
		default:
			t.CompletedAt = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// checkDueDate applies the due date rules in order: a date more than a year
// in the past is treated as a data entry error, otherwise it only has to be
// on or after the creation timestamp.
func (t *Task) checkDueDate() error {
	due := *t.DueDate
	now := time.Now()
	threshold := now.AddDate(0, 0, -maxDuePastDays)

	if due.Before(threshold) {
		return taskerr.NewDate("due_date", "Due date cannot be more than 1 year in the past").
			WithValue(due).
			WithCode("DUE_DATE_FAR_PAST").
			WithDetail("due_date", due.Format(time.RFC3339)).
			WithDetail("current_time", now.Format(time.RFC3339)).
			WithDetail("threshold", threshold.Format(time.RFC3339)).
			WithDetail("suggestion", "Check that the due date is correct; dates this old usually indicate a data entry error")
	}

	if due.Before(t.CreatedAt) {
		return taskerr.NewDate("due_date", "Due date cannot be before the creation date").
			WithValue(due).
			WithCode("DUE_DATE_BEFORE_CREATION").
			WithDetail("due_date", due.Format(time.RFC3339)).
			WithDetail("created_at", t.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// MarkComplete moves the task to done and stamps the completion time.
// Completing an already completed or archived task fails with a transition
// error carrying the task identity in its details.
func (t *Task) MarkComplete() error {
	switch t.Status {
	case StatusDone:
		e := taskerr.NewTransition(
			fmt.Sprintf("Task '%s' is already marked as complete", t.Title),
			string(StatusDone), string(StatusDone),
		).
			WithCode("ALREADY_COMPLETED").
			WithDetail("task_title", t.Title).
			WithDetail("suggestion", "The task is already complete; no action is needed")
		if t.ID != uuid.Nil {
			e = e.WithDetail("task_id", t.ID.String())
		}
		if t.CompletedAt != nil {
			e = e.WithDetail("completed_at", t.CompletedAt.Format(time.RFC3339))
		}
		return e
	case StatusArchived:
		e := taskerr.NewTransition(
			"Cannot mark archived tasks as complete",
			string(StatusArchived), string(StatusDone),
		).
			WithCode("ARCHIVED_TASK_COMPLETION").
			WithDetail("task_title", t.Title).
			WithDetail("suggestion", "Restore the task from archive first, then mark it as complete")
		if t.ID != uuid.Nil {
			e = e.WithDetail("task_id", t.ID.String())
		}
		return e
	}

	t.Status = StatusDone
	now := time.Now()
	t.CompletedAt = &now
	return nil
}

// SetStatus transitions the task to next, enforcing the transition table and
// keeping the completion timestamp consistent with the new status.
func (t *Task) SetStatus(next Status) error {
	if !next.Valid() {
		return invalidStatusError(string(next))
	}
	if !t.Status.CanTransitionTo(next) {
		allowed := make([]string, 0, len(statusTransitions[t.Status]))
		for _, s := range statusTransitions[t.Status] {
			allowed = append(allowed, string(s))
		}
		return taskerr.NewTransition(
			fmt.Sprintf("Cannot transition from '%s' to '%s'", t.Status, next),
			string(t.Status), string(next),
		).WithDetail("allowed_transitions", allowed)
	}
	if next == StatusArchived && t.CompletedAt == nil {
		return archivedWithoutCompletionError()
	}

	t.Status = next
	switch next {
	case StatusDone:
		if t.CompletedAt == nil {
			now := time.Now()
			t.CompletedAt = &now
		}
	case StatusTodo, StatusInProgress:
		t.CompletedAt = nil
	}
	return nil
}

// Archive moves a completed task into the archive.
func (t *Task) Archive() error {
	return t.SetStatus(StatusArchived)
}

// Restore moves an archived task back to todo so it can be worked on again.
func (t *Task) Restore() error {
	return t.SetStatus(StatusTodo)
}

// IsOverdue reports whether the task's due date has passed as of now.
// Completed and archived tasks are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusDone || t.Status == StatusArchived {
		return false
	}
	return t.DueDate.Before(now)
}

// Map converts the task to its serializable shape. Unassigned IDs and unset
// optional fields are omitted.
func (t *Task) Map() map[string]any {
	m := map[string]any{
		"title":      t.Title,
		"status":     string(t.Status),
		"priority":   string(t.Priority),
		"created_at": t.CreatedAt.Format(time.RFC3339),
	}
	if t.ID != uuid.Nil {
		m["id"] = t.ID.String()
	}
	if t.Description != "" {
		m["description"] = t.Description
	}
	if len(t.Tags) > 0 {
		tags := make([]map[string]any, 0, len(t.Tags))
		for _, tag := range t.Tags {
			tags = append(tags, map[string]any{"name": tag.Name, "color": tag.Color})
		}
		m["tags"] = tags
	}
	if t.DueDate != nil {
		m["due_date"] = t.DueDate.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		m["completed_at"] = t.CompletedAt.Format(time.RFC3339)
	}
	return m
}

func archivedWithoutCompletionError() *taskerr.Error {
	return taskerr.NewState("Archived tasks must have a completed_at timestamp", string(StatusArchived), "").
		WithCode("ARCHIVED_WITHOUT_COMPLETION").
		WithDetail("suggestion", "Mark the task as complete before archiving it, or provide a completion timestamp")
}

// recode swaps the machine code on a recognized failure record, leaving any
// other error untouched.
func recode(err error, code string) error {
	if fe, ok := taskerr.AsError(err); ok {
		return fe.WithCode(code)
	}
	return err
}
