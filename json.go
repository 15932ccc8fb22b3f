package taskkit

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

// MarshalJSON renders the task with an omitted id when none is assigned.
func (t *Task) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          *uuid.UUID `json:"id,omitempty"`
		Title       string     `json:"title"`
		Description string     `json:"description,omitempty"`
		Status      Status     `json:"status"`
		Priority    Priority   `json:"priority"`
		Tags        []Tag      `json:"tags,omitempty"`
		DueDate     *time.Time `json:"due_date,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
		CompletedAt *time.Time `json:"completed_at,omitempty"`
	}{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Tags:        t.Tags,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.ID != uuid.Nil {
		id := t.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

// MarshalJSON renders the list with an omitted id when none is assigned.
func (l *TaskList) MarshalJSON() ([]byte, error) {
	out := struct {
		ID        *uuid.UUID `json:"id,omitempty"`
		Name      string     `json:"name"`
		Owner     string     `json:"owner"`
		Tasks     []*Task    `json:"tasks"`
		CreatedAt time.Time  `json:"created_at"`
	}{
		Name:      l.Name,
		Owner:     l.Owner,
		Tasks:     l.Tasks,
		CreatedAt: l.CreatedAt,
	}
	if out.Tasks == nil {
		out.Tasks = []*Task{}
	}
	if l.ID != uuid.Nil {
		id := l.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

// MarshalJSON renders the user. Deactivated users do not serialize; the
// caller gets the same state failure Map returns.
func (u *User) MarshalJSON() ([]byte, error) {
	if !u.IsActive {
		return nil, u.inactiveError("to_json")
	}
	out := struct {
		ID        *uuid.UUID  `json:"id,omitempty"`
		Username  string      `json:"username"`
		Email     string      `json:"email"`
		FullName  string      `json:"full_name,omitempty"`
		IsActive  bool        `json:"is_active"`
		TaskLists []*TaskList `json:"task_lists"`
		CreatedAt time.Time   `json:"created_at"`
	}{
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		TaskLists: u.TaskLists,
		CreatedAt: u.CreatedAt,
	}
	if out.TaskLists == nil {
		out.TaskLists = []*TaskList{}
	}
	if u.ID != uuid.Nil {
		id := u.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

type tagDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type taskDTO struct {
	ID          *uuid.UUID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Tags        []tagDTO   `json:"tags"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   *time.Time `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type taskListDTO struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name"`
	Owner     string     `json:"owner"`
	Tasks     []taskDTO  `json:"tasks"`
	CreatedAt *time.Time `json:"created_at"`
}

type userDTO struct {
	ID        *uuid.UUID    `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FullName  string        `json:"full_name"`
	IsActive  *bool         `json:"is_active"`
	TaskLists []taskListDTO `json:"task_lists"`
	CreatedAt *time.Time    `json:"created_at"`
}

// ParseTaskJSON decodes and validates a task. Malformed JSON fails with a
// serialization error; a well-formed document flows through NewTask, so
// field failures come back accumulated as a taskerr.Collection.
func ParseTaskJSON(data []byte) (*Task, error) {
	var dto taskDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, taskerr.NewSerialization("Failed to decode task JSON", "from_json", err)
	}

	var task *Task
	err := validator.Batch(func(vc *validator.Context) error {
		task, _ = taskFromDTO(vc, dto)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ParseTaskListJSON decodes and validates a task list including its tasks.
func ParseTaskListJSON(data []byte) (*TaskList, error) {
	var dto taskListDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, taskerr.NewSerialization("Failed to decode task list JSON", "from_json", err)
	}

	var list *TaskList
	err := validator.Batch(func(vc *validator.Context) error {
		list, _ = taskListFromDTO(vc, dto)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ParseUserJSON decodes and validates a user including nested task lists.
func ParseUserJSON(data []byte) (*User, error) {
	var dto userDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, taskerr.NewSerialization("Failed to decode user JSON", "from_json", err)
	}

	var user *User
	err := validator.Batch(func(vc *validator.Context) error {
		opts := make([]UserOption, 0, 4)
		if dto.ID != nil {
			opts = append(opts, WithUserID(*dto.ID))
		}
		if dto.FullName != "" {
			opts = append(opts, WithFullName(dto.FullName))
		}
		if dto.IsActive != nil && !*dto.IsActive {
			opts = append(opts, WithInactive())
		}
		if dto.CreatedAt != nil {
			opts = append(opts, WithUserCreatedAt(*dto.CreatedAt))
		}

		lists := make([]*TaskList, 0, len(dto.TaskLists))
		for _, listDTO := range dto.TaskLists {
			if list, ok := taskListFromDTO(vc, listDTO); ok {
				lists = append(lists, list)
			}
		}
		if len(lists) > 0 {
			opts = append(opts, WithTaskLists(lists...))
		}

		vc.Validate(func() error {
			u, err := NewUser(dto.Username, dto.Email, opts...)
			user = u
			return err
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// taskFromDTO assembles a task inside an open validation scope, recording
// enum parse failures and constructor failures on vc.
func taskFromDTO(vc *validator.Context, dto taskDTO) (*Task, bool) {
	opts := make([]TaskOption, 0, 6)
	if dto.ID != nil {
		opts = append(opts, WithID(*dto.ID))
	}
	if dto.Description != "" {
		opts = append(opts, WithDescription(dto.Description))
	}
	if dto.Status != "" {
		if s, ok := validator.Value(vc, func() (Status, error) { return ParseStatus(dto.Status) }); ok {
			opts = append(opts, WithStatus(s))
		}
	}
	if dto.Priority != "" {
		if p, ok := validator.Value(vc, func() (Priority, error) { return ParsePriority(dto.Priority) }); ok {
			opts = append(opts, WithPriority(p))
		}
	}

	tags := make([]Tag, 0, len(dto.Tags))
	for _, td := range dto.Tags {
		if tag, ok := validator.Value(vc, func() (Tag, error) { return NewTag(td.Name, td.Color) }); ok {
			tags = append(tags, tag)
		}
	}
	if len(tags) > 0 {
		opts = append(opts, WithTags(tags...))
	}

	if dto.DueDate != nil {
		opts = append(opts, WithDueDate(*dto.DueDate))
	}
	if dto.CreatedAt != nil {
		opts = append(opts, WithCreatedAt(*dto.CreatedAt))
	}
	if dto.CompletedAt != nil {
		opts = append(opts, WithCompletedAt(*dto.CompletedAt))
	}

	return validator.Value(vc, func() (*Task, error) { return NewTask(dto.Title, opts...) })
}

// taskListFromDTO assembles a task list and its tasks inside an open
// validation scope.
func taskListFromDTO(vc *validator.Context, dto taskListDTO) (*TaskList, bool) {
	opts := make([]TaskListOption, 0, 3)
	if dto.ID != nil {
		opts = append(opts, WithListID(*dto.ID))
	}
	if dto.CreatedAt != nil {
		opts = append(opts, WithListCreatedAt(*dto.CreatedAt))
	}

	tasks := make([]*Task, 0, len(dto.Tasks))
	for _, td := range dto.Tasks {
		if task, ok := taskFromDTO(vc, td); ok {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) > 0 {
		opts = append(opts, WithTasks(tasks...))
	}

	return validator.Value(vc, func() (*TaskList, error) { return NewTaskList(dto.Name, dto.Owner, opts...) })
}
