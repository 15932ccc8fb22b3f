package taskerr

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Collection is the aggregate failure produced by one batch validation scope:
// every record collected during the scope, in insertion order. It implements
// the error interface and unwraps into its member records.
type Collection []*Error

// Error renders a one-line summary of all records.
func (c Collection) Error() string {
	if len(c) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(c))
	for i, e := range c {
		if e.Field != "" {
			parts[i] = e.Field + ": " + e.Message
		} else {
			parts[i] = e.Message
		}
	}
	noun := "errors"
	if len(c) == 1 {
		noun = "error"
	}
	return fmt.Sprintf("validation failed with %d %s: %s", len(c), noun, strings.Join(parts, "; "))
}

// Unwrap exposes the member records to errors.Is and errors.As.
func (c Collection) Unwrap() []error {
	errs := make([]error, len(c))
	for i, e := range c {
		errs[i] = e
	}
	return errs
}

// Add appends a record, preserving insertion order. Nil records are ignored.
func (c *Collection) Add(e *Error) {
	if e == nil {
		return
	}
	*c = append(*c, e)
}

// IsEmpty reports whether the collection holds no records.
func (c Collection) IsEmpty() bool {
	return len(c) == 0
}

// fieldKey is the lookup name for a record's field: "general" for
// field-less records.
func fieldKey(field string) string {
	if field == "" {
		return "general"
	}
	return field
}

// Has reports whether any record applies to the given field. Field-less
// records answer under "general".
func (c Collection) Has(field string) bool {
	for _, e := range c {
		if fieldKey(e.Field) == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for the given field, in order.
// Field-less records answer under "general".
func (c Collection) Get(field string) []string {
	var messages []string
	for _, e := range c {
		if fieldKey(e.Field) == field {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

// Fields returns the distinct field names in first-seen order. Field-less
// records are reported as "general".
func (c Collection) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, e := range c {
		field := fieldKey(e.Field)
		if !seen[field] {
			fields = append(fields, field)
			seen[field] = true
		}
	}
	return fields
}

// First returns the earliest record, or nil for an empty collection.
func (c Collection) First() *Error {
	if len(c) == 0 {
		return nil
	}
	return c[0]
}

// Format renders a multi-line report of every record in insertion order.
// With includeDetails the offending value and the full details mapping are
// rendered per record, detail keys sorted; without it each record is a single
// summary line. Output depends only on the records, so repeated calls over
// the same collection produce identical text.
func (c Collection) Format(includeDetails bool) string {
	if len(c) == 0 {
		return "No validation errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d validation error(s):", len(c))
	for i, e := range c {
		fmt.Fprintf(&b, "\n  %d. [%s] Field '%s': %s", i+1, e.Code, fieldKey(e.Field), e.Message)
		if !includeDetails {
			continue
		}
		if e.Value != nil {
			fmt.Fprintf(&b, "\n     Value: %v", e.Value)
		}
		if len(e.Details) > 0 {
			b.WriteString("\n     Details:")
			for _, k := range sortedKeys(e.Details) {
				fmt.Fprintf(&b, "\n       %s: %v", k, e.Details[k])
			}
		}
	}
	return b.String()
}

// Map converts the aggregate to its serializable shape.
func (c Collection) Map() map[string]any {
	errs := make([]map[string]any, len(c))
	for i, e := range c {
		errs[i] = e.Map()
	}
	return map[string]any{
		"error_code": CodeMultipleErrors,
		"message":    c.Error(),
		"details": map[string]any{
			"error_count": len(c),
			"errors":      errs,
		},
	}
}

// MarshalJSON serializes the Map shape.
func (c Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}
