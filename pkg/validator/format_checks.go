package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

var (
	emailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Email checks an email address stage by stage so the failure pinpoints the
// actual mistake instead of reporting a generic mismatch. Returns the
// trimmed, lowercased address.
func Email(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", taskerr.NewField("email", "Email address cannot be empty").
			WithCode("EMAIL_EMPTY").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("example", "user@example.com")
	}

	value = strings.TrimSpace(value)

	if !strings.Contains(value, "@") {
		return "", taskerr.NewField("email", "Email address must contain '@' symbol").
			WithCode("EMAIL_MISSING_AT").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("hint", "Email must have format: username@domain.com")
	}

	parts := strings.Split(value, "@")
	if len(parts) != 2 {
		return "", taskerr.NewField("email", "Email address must contain exactly one '@' symbol").
			WithCode("EMAIL_MULTIPLE_AT").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("hint", "Email should have only one '@' separating username and domain")
	}

	local, domain := parts[0], parts[1]

	if local == "" {
		return "", taskerr.NewField("email", "Email address must have a username before '@'").
			WithCode("EMAIL_EMPTY_LOCAL").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("hint", "Provide a username before the '@' symbol")
	}

	if domain == "" {
		return "", taskerr.NewField("email", "Email address must have a domain after '@'").
			WithCode("EMAIL_EMPTY_DOMAIN").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("hint", "Provide a domain after the '@' symbol (e.g., example.com)")
	}

	if !strings.Contains(domain, ".") {
		return "", taskerr.NewField("email", "Email domain must contain a period (e.g., example.com)").
			WithCode("EMAIL_INVALID_DOMAIN").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("hint", "Domain should include a top-level domain like '.com', '.org', '.net', etc.").
			WithDetail("examples", []string{"user@example.com", "admin@company.org", "info@site.co.uk"})
	}

	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", taskerr.NewField("email", "Email domain cannot start or end with a period").
			WithCode("EMAIL_INVALID_DOMAIN_FORMAT").
			WithValue(value).
			WithDetail("hint", "Domain should be in format: example.com (not .example.com or example.com.)")
	}

	if !emailRE.MatchString(value) {
		return "", taskerr.NewField("email", "Email address contains invalid characters or format").
			WithCode("EMAIL_INVALID_FORMAT").
			WithValue(value).
			WithDetail("expected_format", "username@domain.com").
			WithDetail("allowed_characters", "Letters, numbers, dots, hyphens, underscores in username; letters, numbers, dots, hyphens in domain").
			WithDetail("examples", []string{"user@example.com", "john.doe@company.co.uk", "admin_123@site.org"})
	}

	return strings.ToLower(value), nil
}

// HexColor checks a #RRGGBB color and returns it normalized to uppercase.
func HexColor(value string) (string, error) {
	if value == "" {
		return "", taskerr.NewField("color", "Color cannot be empty").
			WithCode("COLOR_EMPTY").
			WithValue(value).
			WithDetail("expected_format", "#RRGGBB").
			WithDetail("examples", []string{"#FF0000 (red)", "#00FF00 (green)", "#0000FF (blue)", "#808080 (gray)"})
	}

	if !hexColorRE.MatchString(value) {
		var hint string
		switch {
		case !strings.HasPrefix(value, "#"):
			hint = "Color must start with '#' symbol"
		case utf8.RuneCountInString(value) != 7:
			hint = fmt.Sprintf("Color must be exactly 7 characters (# + 6 hex digits), got %d characters", utf8.RuneCountInString(value))
		default:
			hint = "Color must contain only hexadecimal digits (0-9, A-F) after the '#' symbol"
		}

		return "", taskerr.NewField("color", fmt.Sprintf("Invalid color format: '%s'. Expected format: #RRGGBB", value)).
			WithCode("INVALID_COLOR_FORMAT").
			WithValue(value).
			WithDetail("expected_format", "#RRGGBB (e.g., #FF0000)").
			WithDetail("examples", []string{"#FF0000 (red)", "#00FF00 (green)", "#0000FF (blue)"}).
			WithDetail("hint", hint)
	}

	return strings.ToUpper(value), nil
}
