package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
)

var usernameRE = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9_-]*[a-zA-Z0-9])?$`)

// Username checks the account-name rules: 3-30 characters, starts with a
// letter, ends with a letter or digit, letters/digits/underscore/hyphen only,
// and no consecutive special characters. Returns the trimmed username.
func Username(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", taskerr.NewField("username", "Username cannot be empty").
			WithCode("USERNAME_EMPTY").
			WithValue(value).
			WithDetail("rules", []string{
				"Must be 3-30 characters long",
				"Must start with a letter",
				"Can contain letters, numbers, underscores, and hyphens",
			}).
			WithDetail("examples", []string{"john_doe", "user123", "alice-smith"})
	}

	value = strings.TrimSpace(value)
	length := utf8.RuneCountInString(value)

	if length < usernameMinLen {
		return "", taskerr.NewField("username", fmt.Sprintf("Username must be at least %d characters long (got %d)", usernameMinLen, length)).
			WithCode("USERNAME_TOO_SHORT").
			WithValue(value).
			WithDetail("min_length", usernameMinLen).
			WithDetail("max_length", usernameMaxLen).
			WithDetail("hint", fmt.Sprintf("Provide a username with at least %d characters", usernameMinLen))
	}

	if length > usernameMaxLen {
		return "", taskerr.NewField("username", fmt.Sprintf("Username must be at most %d characters long (got %d)", usernameMaxLen, length)).
			WithCode("USERNAME_TOO_LONG").
			WithValue(value).
			WithDetail("min_length", usernameMinLen).
			WithDetail("max_length", usernameMaxLen).
			WithDetail("hint", fmt.Sprintf("Shorten the username to %d characters or less", usernameMaxLen))
	}

	first, _ := utf8.DecodeRuneInString(value)
	if !unicode.IsLetter(first) {
		return "", taskerr.NewField("username", fmt.Sprintf("Username must start with a letter (got '%c')", first)).
			WithCode("USERNAME_INVALID_START").
			WithValue(value).
			WithDetail("hint", "Username should begin with a letter (a-z or A-Z)").
			WithDetail("examples", []string{"john_doe", "alice123", "user_name"})
	}

	last, _ := utf8.DecodeLastRuneInString(value)
	if last == '_' || last == '-' {
		return "", taskerr.NewField("username", fmt.Sprintf("Username cannot end with '%c'", last)).
			WithCode("USERNAME_INVALID_END").
			WithValue(value).
			WithDetail("hint", "Username should end with a letter or number").
			WithDetail("examples", []string{"john_doe", "user123", "alice_smith"})
	}

	for _, pair := range []string{"__", "--", "_-", "-_"} {
		if strings.Contains(value, pair) {
			return "", taskerr.NewField("username", "Username cannot contain consecutive special characters").
				WithCode("USERNAME_CONSECUTIVE_SPECIAL").
				WithValue(value).
				WithDetail("hint", "Use only single underscores or hyphens between words").
				WithDetail("valid", "john_doe, user-name").
				WithDetail("invalid", "john__doe, user--name, name_-test")
		}
	}

	if !usernameRE.MatchString(value) {
		if invalid := invalidUsernameRunes(value); len(invalid) > 0 {
			chars := make([]string, len(invalid))
			quoted := make([]string, len(invalid))
			for i, r := range invalid {
				chars[i] = string(r)
				quoted[i] = fmt.Sprintf("'%c'", r)
			}
			return "", taskerr.NewField("username", "Username contains invalid characters: "+strings.Join(quoted, ", ")).
				WithCode("USERNAME_INVALID_CHARACTERS").
				WithValue(value).
				WithDetail("allowed_characters", "letters (a-z, A-Z), numbers (0-9), underscores (_), hyphens (-)").
				WithDetail("invalid_characters", chars).
				WithDetail("hint", "Remove or replace the invalid characters")
		}

		return "", taskerr.NewField("username", "Username format is invalid").
			WithCode("USERNAME_INVALID_FORMAT").
			WithValue(value).
			WithDetail("rules", []string{
				"Must start with a letter",
				"Can contain letters, numbers, underscores, and hyphens",
				"Cannot end with underscore or hyphen",
				"Cannot have consecutive special characters",
			}).
			WithDetail("examples", []string{"john_doe", "user123", "alice-smith", "bob_jones2"})
	}

	return value, nil
}

// invalidUsernameRunes returns the distinct runes outside the allowed
// username charset, sorted for stable error output.
func invalidUsernameRunes(value string) []rune {
	seen := make(map[rune]bool)
	var invalid []rune
	for _, r := range value {
		if isUsernameRune(r) || seen[r] {
			continue
		}
		seen[r] = true
		invalid = append(invalid, r)
	}
	sort.Slice(invalid, func(i, j int) bool { return invalid[i] < invalid[j] })
	return invalid
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}
