package taskerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Kind discriminates the recognized validation failure variants. The batch
// validator only needs the binary "recognized vs unexpected" distinction;
// consumers use Kind to branch on the failure category without parsing codes.
type Kind uint8

const (
	KindValidation Kind = iota
	KindField
	KindState
	KindTransition
	KindDate
	KindDuplicate
	KindNotFound
	KindOwnership
	KindIntegrity
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindField:
		return "field"
	case KindState:
		return "state"
	case KindTransition:
		return "transition"
	case KindDate:
		return "date"
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not_found"
	case KindOwnership:
		return "ownership"
	case KindIntegrity:
		return "integrity"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Default machine codes assigned by the constructors. Call sites override
// them with WithCode when a more specific code exists (e.g. "EMAIL_MISSING_AT").
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeField          = "FIELD_VALIDATION_ERROR"
	CodeState          = "STATE_VALIDATION_ERROR"
	CodeTransition     = "INVALID_STATE_TRANSITION"
	CodeDate           = "DATE_VALIDATION_ERROR"
	CodeDuplicateTask  = "DUPLICATE_TASK"
	CodeNotFound       = "NOT_FOUND"
	CodeTaskNotFound   = "TASK_NOT_FOUND"
	CodeOwnership      = "OWNERSHIP_ERROR"
	CodeIntegrity      = "DATA_INTEGRITY_ERROR"
	CodeSerialization  = "SERIALIZATION_ERROR"
	CodeMultipleErrors = "MULTIPLE_VALIDATION_ERRORS"
)

// Error is a single validation failure record: one kind tag plus the common
// code/field/message/value/details shape shared by every variant.
//
// Build an Error with a constructor and the chainable With* setters, then
// treat it as immutable once it has been recorded or returned.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Value   any
	Details map[string]any

	cause error
}

// New returns a general validation failure not tied to a single field.
func New(message string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: message}
}

// NewField returns a failure for a specific field. Attach the offending
// input with WithValue and a more specific code with WithCode.
func NewField(field, message string) *Error {
	return &Error{Kind: KindField, Code: CodeField, Field: field, Message: message}
}

// NewState returns a failure for an operation not allowed in the current
// object state. Empty state names are left out of the details.
func NewState(message, currentState, attemptedState string) *Error {
	e := &Error{Kind: KindState, Code: CodeState, Message: message}
	if currentState != "" {
		e = e.WithDetail("current_state", currentState)
	}
	if attemptedState != "" {
		e = e.WithDetail("attempted_state", attemptedState)
	}
	return e
}

// NewTransition returns a failure for a status change the transition table
// does not allow.
func NewTransition(message, currentStatus, attemptedStatus string) *Error {
	e := &Error{Kind: KindTransition, Code: CodeTransition, Message: message}
	if currentStatus != "" {
		e = e.WithDetail("current_status", currentStatus)
	}
	if attemptedStatus != "" {
		e = e.WithDetail("attempted_status", attemptedStatus)
	}
	return e
}

// NewDate returns a date-rule failure for the given field.
func NewDate(field, message string) *Error {
	return &Error{Kind: KindDate, Code: CodeDate, Field: field, Message: message}
}

// NewDuplicate returns a duplicate-entry failure with a caller-supplied
// message, for duplicates that span more than one entry.
func NewDuplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Code: CodeDuplicateTask, Message: message}
}

// NewDuplicateTask returns a failure for a task ID that already exists.
func NewDuplicateTask(taskID string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Code:    CodeDuplicateTask,
		Message: fmt.Sprintf("Task with ID '%s' already exists", taskID),
		Details: map[string]any{"task_id": taskID},
	}
}

// NewNotFound returns a lookup-miss failure with a caller-supplied message.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

// NewTaskNotFound returns a failure for a task ID lookup miss.
func NewTaskNotFound(taskID string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("Task with ID '%s' not found", taskID),
		Details: map[string]any{"task_id": taskID},
	}
}

// NewOwnership returns a failure for a resource access by a non-owner.
// Empty identifiers are left out of the details.
func NewOwnership(message, resourceType, resourceID, userID string) *Error {
	e := &Error{Kind: KindOwnership, Code: CodeOwnership, Message: message}
	if resourceType != "" {
		e = e.WithDetail("resource_type", resourceType)
	}
	if resourceID != "" {
		e = e.WithDetail("resource_id", resourceID)
	}
	if userID != "" {
		e = e.WithDetail("user_id", userID)
	}
	return e
}

// NewIntegrity returns a failure for an internal consistency violation.
func NewIntegrity(message, resolutionHint string) *Error {
	e := &Error{Kind: KindIntegrity, Code: CodeIntegrity, Message: message}
	if resolutionHint != "" {
		e = e.WithDetail("resolution_hint", resolutionHint)
	}
	return e
}

// NewSerialization returns a failure for an encode/decode operation, wrapping
// the underlying error when one exists.
func NewSerialization(message, operation string, cause error) *Error {
	e := &Error{Kind: KindSerialization, Code: CodeSerialization, Message: message, cause: cause}
	if operation != "" {
		e = e.WithDetail("operation", operation)
	}
	if cause != nil {
		e = e.WithDetail("original_error", cause.Error()).
			WithDetail("error_type", fmt.Sprintf("%T", cause)).
			WithDetail("resolution_hint", "Check that all values are serializable and free of circular references")
	}
	return e
}

// WithCode overrides the default machine code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithMessage overrides the message. Layers that reuse a lower-level check
// but present the failure in their own vocabulary use this together with
// WithCode.
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// WithField re-attributes the failure to a different field name, for callers
// that validate one of their fields through a checker named after another.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithValue attaches the offending input value.
func (e *Error) WithValue(value any) *Error {
	e.Value = value
	return e
}

// WithDetail adds one details entry.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given entries into the details.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e = e.WithDetail(k, v)
	}
	return e
}

// Error renders "[CODE] Field 'name': message (Details: k=v, ...)".
// The field part is omitted for field-less records, the details part when no
// details exist. Detail keys are sorted so the output is deterministic.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Code)
	b.WriteString("]")
	if e.Field != "" {
		b.WriteString(" Field '")
		b.WriteString(e.Field)
		b.WriteString("':")
	}
	b.WriteString(" ")
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		b.WriteString(" (Details: ")
		b.WriteString(joinDetails(e.Details))
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Map converts the record to its serializable shape. Empty field, nil value
// and empty details are omitted.
func (e *Error) Map() map[string]any {
	m := map[string]any{
		"error_code": e.Code,
		"message":    e.Message,
	}
	if e.Field != "" {
		m["field_name"] = e.Field
	}
	if e.Value != nil {
		m["invalid_value"] = e.Value
	}
	if len(e.Details) > 0 {
		details := make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			details[k] = v
		}
		m["details"] = details
	}
	return m
}

// MarshalJSON serializes the Map shape.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// Is reports whether err is a recognized failure record of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsValidation reports whether err is a recognized validation failure:
// either a single record or an aggregate collection.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return true
	}
	var c Collection
	return errors.As(err, &c)
}

// AsError extracts a single failure record from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsCollection extracts an aggregate failure from err.
func AsCollection(err error) (Collection, bool) {
	var c Collection
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}

func joinDetails(details map[string]any) string {
	keys := sortedKeys(details)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, details[k])
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
