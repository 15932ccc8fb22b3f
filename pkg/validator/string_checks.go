package validator

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

// NotEmpty checks that value contains at least one non-whitespace character
// and returns it trimmed.
func NotEmpty(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", taskerr.NewField(field, fmt.Sprintf("%s cannot be empty or whitespace only", field)).
			WithCode("EMPTY_STRING_ERROR").
			WithValue(value).
			WithDetail("suggestion", fmt.Sprintf("Provide a non-empty %s with at least one non-whitespace character", field))
	}
	return strings.TrimSpace(value), nil
}
