package taskerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	t.Run("renders code and message", func(t *testing.T) {
		err := taskerr.New("something is off")
		assert.Equal(t, "[VALIDATION_ERROR] something is off", err.Error())
	})

	t.Run("renders field part when field is set", func(t *testing.T) {
		err := taskerr.NewField("email", "Email address cannot be empty")
		assert.Equal(t, "[FIELD_VALIDATION_ERROR] Field 'email': Email address cannot be empty", err.Error())
	})

	t.Run("renders details sorted by key", func(t *testing.T) {
		err := taskerr.NewField("username", "too short").
			WithCode("USERNAME_TOO_SHORT").
			WithDetail("min_length", 3).
			WithDetail("hint", "use at least 3 characters")

		want := "[USERNAME_TOO_SHORT] Field 'username': too short (Details: hint=use at least 3 characters, min_length=3)"
		assert.Equal(t, want, err.Error())
	})

	t.Run("repeated calls yield identical output", func(t *testing.T) {
		err := taskerr.New("check").
			WithDetail("a", 1).
			WithDetail("b", 2).
			WithDetail("c", 3)
		first := err.Error()
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, err.Error())
		}
	})
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	t.Run("new assigns general validation defaults", func(t *testing.T) {
		err := taskerr.New("broken")
		assert.Equal(t, taskerr.KindValidation, err.Kind)
		assert.Equal(t, "VALIDATION_ERROR", err.Code)
		assert.Empty(t, err.Field)
		assert.Nil(t, err.Details)
	})

	t.Run("field constructor sets field and default code", func(t *testing.T) {
		err := taskerr.NewField("title", "cannot be empty")
		assert.Equal(t, taskerr.KindField, err.Kind)
		assert.Equal(t, "FIELD_VALIDATION_ERROR", err.Code)
		assert.Equal(t, "title", err.Field)
	})

	t.Run("state constructor stores both states", func(t *testing.T) {
		err := taskerr.NewState("operation not allowed", "inactive", "active")
		assert.Equal(t, "STATE_VALIDATION_ERROR", err.Code)
		assert.Equal(t, "inactive", err.Details["current_state"])
		assert.Equal(t, "active", err.Details["attempted_state"])
	})

	t.Run("state constructor omits empty states", func(t *testing.T) {
		err := taskerr.NewState("bad state", "", "")
		assert.NotContains(t, err.Details, "current_state")
		assert.NotContains(t, err.Details, "attempted_state")
	})

	t.Run("transition constructor stores statuses", func(t *testing.T) {
		err := taskerr.NewTransition("Cannot transition from archived to in_progress", "archived", "in_progress")
		assert.Equal(t, taskerr.KindTransition, err.Kind)
		assert.Equal(t, "INVALID_STATE_TRANSITION", err.Code)
		assert.Equal(t, "archived", err.Details["current_status"])
		assert.Equal(t, "in_progress", err.Details["attempted_status"])
	})

	t.Run("transition constructor omits empty statuses", func(t *testing.T) {
		err := taskerr.NewTransition("invalid status change", "", "")
		assert.NotContains(t, err.Details, "current_status")
		assert.NotContains(t, err.Details, "attempted_status")
	})

	t.Run("date constructor sets field and date kind", func(t *testing.T) {
		err := taskerr.NewDate("due_date", "Due date cannot be before the creation date")
		assert.Equal(t, taskerr.KindDate, err.Kind)
		assert.Equal(t, "DATE_VALIDATION_ERROR", err.Code)
		assert.Equal(t, "due_date", err.Field)
	})

	t.Run("duplicate constructor takes a caller message", func(t *testing.T) {
		err := taskerr.NewDuplicate("Found 2 duplicate task ID(s) in list")
		assert.Equal(t, taskerr.KindDuplicate, err.Kind)
		assert.Equal(t, "DUPLICATE_TASK", err.Code)
		assert.Equal(t, "Found 2 duplicate task ID(s) in list", err.Message)
		assert.Nil(t, err.Details)
	})

	t.Run("duplicate task builds default message", func(t *testing.T) {
		err := taskerr.NewDuplicateTask("task-42")
		assert.Equal(t, "Task with ID 'task-42' already exists", err.Message)
		assert.Equal(t, "DUPLICATE_TASK", err.Code)
		assert.Equal(t, "task-42", err.Details["task_id"])
	})

	t.Run("not found constructor takes a caller message", func(t *testing.T) {
		err := taskerr.NewNotFound("Task list 'Errands' not found for user 'john_doe'")
		assert.Equal(t, taskerr.KindNotFound, err.Kind)
		assert.Equal(t, "NOT_FOUND", err.Code)
		assert.Nil(t, err.Details)
	})

	t.Run("task not found builds default message", func(t *testing.T) {
		err := taskerr.NewTaskNotFound("task-999")
		assert.Equal(t, "Task with ID 'task-999' not found", err.Message)
		assert.Equal(t, "TASK_NOT_FOUND", err.Code)
		assert.Equal(t, "task-999", err.Details["task_id"])
	})

	t.Run("ownership constructor stores resource identifiers", func(t *testing.T) {
		err := taskerr.NewOwnership("User does not own this resource", "task_list", "list-123", "user-456")
		assert.Equal(t, "OWNERSHIP_ERROR", err.Code)
		assert.Equal(t, "task_list", err.Details["resource_type"])
		assert.Equal(t, "list-123", err.Details["resource_id"])
		assert.Equal(t, "user-456", err.Details["user_id"])
	})

	t.Run("ownership constructor omits missing identifiers", func(t *testing.T) {
		err := taskerr.NewOwnership("Access denied", "", "", "user-789")
		assert.NotContains(t, err.Details, "resource_type")
		assert.NotContains(t, err.Details, "resource_id")
		assert.Equal(t, "user-789", err.Details["user_id"])
	})

	t.Run("integrity constructor stores resolution hint", func(t *testing.T) {
		err := taskerr.NewIntegrity("Circular reference detected", "Remove circular dependencies between objects")
		assert.Equal(t, "DATA_INTEGRITY_ERROR", err.Code)
		assert.Equal(t, "Remove circular dependencies between objects", err.Details["resolution_hint"])
	})

	t.Run("integrity constructor allows empty hint", func(t *testing.T) {
		err := taskerr.NewIntegrity("Data consistency violation detected", "")
		assert.NotContains(t, err.Details, "resolution_hint")
	})

	t.Run("serialization constructor wraps the cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := taskerr.NewSerialization("JSON decoding failed", "from_json", cause)

		assert.Equal(t, "SERIALIZATION_ERROR", err.Code)
		assert.Equal(t, "from_json", err.Details["operation"])
		assert.Equal(t, cause.Error(), err.Details["original_error"])
		assert.Equal(t, "*errors.errorString", err.Details["error_type"])
		assert.Contains(t, err.Details, "resolution_hint")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("serialization constructor without cause has no error details", func(t *testing.T) {
		err := taskerr.NewSerialization("Serialization failed", "to_json", nil)
		assert.Equal(t, "to_json", err.Details["operation"])
		assert.NotContains(t, err.Details, "original_error")
		assert.Nil(t, err.Unwrap())
	})
}

func TestError_With(t *testing.T) {
	t.Parallel()

	t.Run("with code overrides the default", func(t *testing.T) {
		err := taskerr.NewField("email", "missing at symbol").WithCode("EMAIL_MISSING_AT")
		assert.Equal(t, "EMAIL_MISSING_AT", err.Code)
	})

	t.Run("with value stores the offending input", func(t *testing.T) {
		err := taskerr.NewField("email", "bad").WithValue("not-an-email")
		assert.Equal(t, "not-an-email", err.Value)
	})

	t.Run("with message replaces the message text", func(t *testing.T) {
		err := taskerr.NewField("name", "name cannot be empty").
			WithMessage("Task list name cannot be empty")
		assert.Equal(t, "Task list name cannot be empty", err.Message)
		assert.Equal(t, "name", err.Field)
	})

	t.Run("with field retargets the record", func(t *testing.T) {
		err := taskerr.NewField("username", "too short").WithField("owner")
		assert.Equal(t, "owner", err.Field)
	})

	t.Run("with details merges entries", func(t *testing.T) {
		err := taskerr.NewField("color", "bad").
			WithDetail("expected_format", "#RRGGBB").
			WithDetails(map[string]any{"hint": "start with '#'", "expected_format": "#RRGGBB (e.g., #FF0000)"})

		assert.Equal(t, "#RRGGBB (e.g., #FF0000)", err.Details["expected_format"])
		assert.Equal(t, "start with '#'", err.Details["hint"])
	})
}

func TestError_Map(t *testing.T) {
	t.Parallel()

	t.Run("includes all populated attributes", func(t *testing.T) {
		err := taskerr.NewField("username", "too short").
			WithCode("USERNAME_TOO_SHORT").
			WithValue("ab").
			WithDetail("min_length", 3)

		m := err.Map()
		assert.Equal(t, "USERNAME_TOO_SHORT", m["error_code"])
		assert.Equal(t, "too short", m["message"])
		assert.Equal(t, "username", m["field_name"])
		assert.Equal(t, "ab", m["invalid_value"])
		require.IsType(t, map[string]any{}, m["details"])
		assert.Equal(t, 3, m["details"].(map[string]any)["min_length"])
	})

	t.Run("omits empty attributes", func(t *testing.T) {
		m := taskerr.New("plain").Map()
		assert.NotContains(t, m, "field_name")
		assert.NotContains(t, m, "invalid_value")
		assert.NotContains(t, m, "details")
	})

	t.Run("returned details are a copy", func(t *testing.T) {
		err := taskerr.New("plain").WithDetail("hint", "original")
		m := err.Map()
		m["details"].(map[string]any)["hint"] = "mutated"
		assert.Equal(t, "original", err.Details["hint"])
	})
}

func TestRecognitionHelpers(t *testing.T) {
	t.Parallel()

	t.Run("is matches the kind", func(t *testing.T) {
		err := taskerr.NewTaskNotFound("task-1")
		assert.True(t, taskerr.Is(err, taskerr.KindNotFound))
		assert.False(t, taskerr.Is(err, taskerr.KindOwnership))
	})

	t.Run("is matches wrapped records", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup: %w", taskerr.NewTaskNotFound("task-1"))
		assert.True(t, taskerr.Is(wrapped, taskerr.KindNotFound))
	})

	t.Run("is validation accepts records and collections", func(t *testing.T) {
		assert.True(t, taskerr.IsValidation(taskerr.New("x")))
		assert.True(t, taskerr.IsValidation(taskerr.Collection{taskerr.New("x")}))
		assert.False(t, taskerr.IsValidation(errors.New("plain")))
		assert.False(t, taskerr.IsValidation(nil))
	})

	t.Run("as error extracts the record", func(t *testing.T) {
		orig := taskerr.NewField("email", "bad")
		got, ok := taskerr.AsError(fmt.Errorf("wrap: %w", orig))
		require.True(t, ok)
		assert.Same(t, orig, got)
	})

	t.Run("as error rejects plain errors", func(t *testing.T) {
		_, ok := taskerr.AsError(errors.New("plain"))
		assert.False(t, ok)
	})

	t.Run("as collection extracts the aggregate", func(t *testing.T) {
		orig := taskerr.Collection{taskerr.New("a"), taskerr.New("b")}
		got, ok := taskerr.AsCollection(fmt.Errorf("wrap: %w", orig))
		require.True(t, ok)
		assert.Len(t, got, 2)
	})
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	cases := map[taskerr.Kind]string{
		taskerr.KindValidation:    "validation",
		taskerr.KindField:         "field",
		taskerr.KindState:         "state",
		taskerr.KindTransition:    "transition",
		taskerr.KindDate:          "date",
		taskerr.KindDuplicate:     "duplicate",
		taskerr.KindNotFound:      "not_found",
		taskerr.KindOwnership:     "ownership",
		taskerr.KindIntegrity:     "integrity",
		taskerr.KindSerialization: "serialization",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
	assert.Equal(t, "unknown", taskerr.Kind(200).String())
}
