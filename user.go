package taskkit

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

const (
	maxFullNameLen = 100

	accountUsernameMinLen = 3
	accountUsernameMaxLen = 50
)

// Account-level identity rules. The account username charset is stricter
// than the generic username checker: hyphens and other separators are not
// allowed in account names.
var (
	accountUsernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	accountEmailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User owns task lists. List names are unique per user (case-insensitive)
// and every owned list must carry the user's username as its owner.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name,omitempty"`
	IsActive  bool        `json:"is_active"`
	TaskLists []*TaskList `json:"task_lists"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserOption customizes NewUser.
type UserOption func(*User)

// WithUserID assigns an identity to the user.
func WithUserID(id uuid.UUID) UserOption {
	return func(u *User) { u.ID = id }
}

// WithFullName sets the display name.
func WithFullName(fullName string) UserOption {
	return func(u *User) { u.FullName = fullName }
}

// WithTaskLists seeds the user with initial task lists.
func WithTaskLists(lists ...*TaskList) UserOption {
	return func(u *User) { u.TaskLists = lists }
}

// WithUserCreatedAt overrides the creation timestamp (default now).
func WithUserCreatedAt(createdAt time.Time) UserOption {
	return func(u *User) { u.CreatedAt = createdAt }
}

// WithInactive creates the user in the deactivated state.
func WithInactive() UserOption {
	return func(u *User) { u.IsActive = false }
}

// NewUser validates and builds a user. The username keeps its casing, the
// email is normalized to lowercase. All failures are reported together as a
// taskerr.Collection.
func NewUser(username, email string, opts ...UserOption) (*User, error) {
	u := &User{IsActive: true, CreatedAt: time.Now()}
	for _, opt := range opts {
		opt(u)
	}

	err := validator.Batch(func(vc *validator.Context) error {
		u.Username, _ = validator.Value(vc, func() (string, error) {
			return checkAccountUsername(username)
		})
		u.Email, _ = validator.Value(vc, func() (string, error) {
			return checkAccountEmail(email)
		})

		if utf8.RuneCountInString(u.FullName) > maxFullNameLen {
			vc.AddError(taskerr.NewField("full_name", fmt.Sprintf("Full name cannot exceed %d characters", maxFullNameLen)).
				WithCode("FULL_NAME_TOO_LONG").
				WithDetail("max_length", maxFullNameLen).
				WithDetail("current_length", utf8.RuneCountInString(u.FullName)))
		}

		if dup := duplicateListNames(u.TaskLists); dup != nil {
			vc.AddError(dup)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// checkAccountUsername applies the account naming rules: 3-50 characters of
// letters, digits and underscores. Returns the trimmed username.
func checkAccountUsername(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", taskerr.NewField("username", "Username cannot be empty").
			WithCode("USERNAME_EMPTY").
			WithValue(value).
			WithDetail("suggestion", "Choose a username of letters, numbers, and underscores, like 'john_doe'")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < accountUsernameMinLen {
		return "", taskerr.NewField("username", fmt.Sprintf("Username must be at least %d characters long (got %d)", accountUsernameMinLen, length)).
			WithCode("USERNAME_TOO_SHORT").
			WithValue(value).
			WithDetail("min_length", accountUsernameMinLen).
			WithDetail("max_length", accountUsernameMaxLen).
			WithDetail("current_length", length)
	}
	if length > accountUsernameMaxLen {
		return "", taskerr.NewField("username", fmt.Sprintf("Username cannot exceed %d characters (got %d)", accountUsernameMaxLen, length)).
			WithCode("USERNAME_TOO_LONG").
			WithValue(value).
			WithDetail("min_length", accountUsernameMinLen).
			WithDetail("max_length", accountUsernameMaxLen).
			WithDetail("current_length", length)
	}

	if !accountUsernameRE.MatchString(trimmed) {
		var invalid []string
		seen := make(map[rune]bool)
		for _, r := range trimmed {
			if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
				continue
			}
			if !seen[r] {
				invalid = append(invalid, string(r))
				seen[r] = true
			}
		}
		return "", taskerr.NewField("username", "Username can only contain letters, numbers, and underscores").
			WithCode("USERNAME_INVALID_FORMAT").
			WithValue(value).
			WithDetail("invalid_characters", invalid).
			WithDetail("allowed_characters", "a-z, A-Z, 0-9, and underscore (_)").
			WithDetail("examples", "john_doe, user123, task_master")
	}

	return trimmed, nil
}

// checkAccountEmail applies the staged email rules and returns the address
// trimmed and lowercased. Each stage reports the first problem it finds so
// the failure points at the exact defect instead of a generic format error.
func checkAccountEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", taskerr.NewField("email", "Email cannot be empty").
			WithCode("EMAIL_EMPTY").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com")
	}

	atCount := strings.Count(trimmed, "@")
	if atCount == 0 {
		return "", taskerr.NewField("email", "Email must contain an '@' symbol").
			WithCode("EMAIL_MISSING_AT_SYMBOL").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("examples", "user@example.com, contact@company.org")
	}
	if atCount > 1 {
		return "", taskerr.NewField("email", fmt.Sprintf("Email cannot contain multiple '@' symbols (found %d)", atCount)).
			WithCode("EMAIL_MULTIPLE_AT_SYMBOLS").
			WithValue(value).
			WithDetail("at_symbol_count", atCount)
	}

	local, domain, _ := strings.Cut(trimmed, "@")
	if local == "" {
		return "", taskerr.NewField("email", "Email username part before '@' cannot be empty").
			WithCode("EMAIL_EMPTY_LOCAL_PART").
			WithValue(value)
	}
	if domain == "" {
		return "", taskerr.NewField("email", "Email domain part after '@' cannot be empty").
			WithCode("EMAIL_EMPTY_DOMAIN").
			WithValue(value)
	}

	if !strings.Contains(domain, ".") {
		return "", taskerr.NewField("email", "Email domain must include a top-level domain like '.com'").
			WithCode("EMAIL_MISSING_TLD").
			WithValue(value).
			WithDetail("domain_provided", domain)
	}
	tld := domain[strings.LastIndex(domain, ".")+1:]
	if len(tld) < 2 {
		return "", taskerr.NewField("email", "Email top-level domain must be at least 2 characters").
			WithCode("EMAIL_INVALID_TLD").
			WithValue(value).
			WithDetail("domain_provided", domain).
			WithDetail("tld_provided", tld)
	}

	if !accountEmailRE.MatchString(trimmed) {
		return "", taskerr.NewField("email", "Email address format is invalid").
			WithCode("EMAIL_INVALID_FORMAT").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("examples", "user@example.com, contact@company.org")
	}

	return strings.ToLower(trimmed), nil
}

// duplicateListNames reports case-insensitive name collisions among lists,
// keeping the first-seen casing in the details.
func duplicateListNames(lists []*TaskList) *taskerr.Error {
	firstSeen := make(map[string]string)
	reported := make(map[string]bool)
	var duplicates []string

	for _, l := range lists {
		if l == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(l.Name))
		if original, ok := firstSeen[key]; ok {
			if !reported[key] {
				duplicates = append(duplicates, original)
				reported[key] = true
			}
			continue
		}
		firstSeen[key] = l.Name
	}

	if len(duplicates) == 0 {
		return nil
	}
	return taskerr.NewField("task_lists", "Duplicate task list names are not allowed").
		WithCode("DUPLICATE_TASKLIST_NAMES").
		WithDetail("duplicate_names", duplicates).
		WithDetail("comparison", "case-insensitive").
		WithDetail("total_lists", len(lists)).
		WithDetail("unique_names", len(firstSeen))
}

// AddTaskList attaches a list to the user, enforcing the unique-name rule
// and that the list is owned by this user.
func (u *User) AddTaskList(l *TaskList) error {
	if l == nil {
		return taskerr.New("Cannot add a nil task list")
	}
	if !strings.EqualFold(l.Owner, u.Username) {
		return taskerr.NewOwnership(
			fmt.Sprintf("Task list '%s' is owned by '%s', not by '%s'", l.Name, l.Owner, u.Username),
			"task_list", idString(l.ID), idString(u.ID),
		).
			WithCode("TASKLIST_OWNER_MISMATCH").
			WithDetail("expected_owner", u.Username).
			WithDetail("actual_owner", l.Owner).
			WithDetail("task_list_name", l.Name)
	}

	key := strings.ToLower(strings.TrimSpace(l.Name))
	for _, existing := range u.TaskLists {
		if existing != nil && strings.ToLower(strings.TrimSpace(existing.Name)) == key {
			return taskerr.NewField("task_lists", fmt.Sprintf("Task list name '%s' is already used by this user", l.Name)).
				WithCode("DUPLICATE_TASKLIST_NAMES").
				WithDetail("duplicate_names", []string{existing.Name}).
				WithDetail("comparison", "case-insensitive")
		}
	}

	u.TaskLists = append(u.TaskLists, l)
	return nil
}

// FindList returns the user's task list with the given name. Matching is
// case-insensitive and ignores surrounding whitespace. A list that matches
// but is not owned by the user fails with an ownership error instead of a
// lookup miss.
func (u *User) FindList(name string) (*TaskList, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, l := range u.TaskLists {
		if l == nil || strings.ToLower(strings.TrimSpace(l.Name)) != key {
			continue
		}
		if !strings.EqualFold(l.Owner, u.Username) {
			return nil, taskerr.NewOwnership(
				fmt.Sprintf("Task list '%s' is not owned by user '%s'", l.Name, u.Username),
				"task_list", idString(l.ID), idString(u.ID),
			).
				WithCode("TASKLIST_OWNERSHIP_MISMATCH").
				WithDetail("expected_owner", u.Username).
				WithDetail("actual_owner", l.Owner).
				WithDetail("task_list_name", l.Name)
		}
		return l, nil
	}

	available := make([]string, 0, len(u.TaskLists))
	for _, l := range u.TaskLists {
		if l != nil {
			available = append(available, l.Name)
		}
	}
	e := taskerr.NewNotFound(fmt.Sprintf("Task list '%s' not found for user '%s'", name, u.Username)).
		WithCode("TASKLIST_NOT_FOUND").
		WithDetail("task_list_name", name).
		WithDetail("available_lists", available)
	if u.ID != uuid.Nil {
		e = e.WithDetail("user_id", u.ID.String())
	}
	return nil, e
}

// Activate enables the account.
func (u *User) Activate() {
	u.IsActive = true
}

// Deactivate disables the account. Serialization of a deactivated user is
// rejected until it is activated again.
func (u *User) Deactivate() {
	u.IsActive = false
}

// Map converts the user to its serializable shape. Deactivated users do not
// serialize; the caller gets a state failure naming the blocked operation.
func (u *User) Map() (map[string]any, error) {
	if !u.IsActive {
		return nil, u.inactiveError("to_dict")
	}

	lists := make([]map[string]any, 0, len(u.TaskLists))
	for _, l := range u.TaskLists {
		if l != nil {
			lists = append(lists, l.Map())
		}
	}
	m := map[string]any{
		"username":   u.Username,
		"email":      u.Email,
		"is_active":  u.IsActive,
		"task_lists": lists,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
	if u.ID != uuid.Nil {
		m["id"] = u.ID.String()
	}
	if u.FullName != "" {
		m["full_name"] = u.FullName
	}
	return m, nil
}

// inactiveError builds the state failure for operations blocked on a
// deactivated account.
func (u *User) inactiveError(operation string) *taskerr.Error {
	e := taskerr.NewState(
		fmt.Sprintf("Cannot perform '%s' on inactive user '%s'", operation, u.Username),
		"inactive", "active",
	).
		WithCode("INACTIVE_USER_OPERATION").
		WithDetail("operation", operation).
		WithDetail("is_active", false).
		WithDetail("username", u.Username).
		WithDetail("suggestion", "Activate the user account before performing this operation")
	if u.ID != uuid.Nil {
		e = e.WithDetail("user_id", u.ID.String())
	}
	return e
}

// idString renders an assigned uuid, or "" for uuid.Nil so optional detail
// fields stay omitted.
func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
