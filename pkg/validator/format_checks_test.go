package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

func emailCode(t *testing.T, value string) string {
	t.Helper()
	_, err := validator.Email(value)
	require.Error(t, err)
	fieldErr, ok := taskerr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "email", fieldErr.Field)
	return fieldErr.Code
}

func TestEmail(t *testing.T) {
	t.Parallel()

	t.Run("normalizes a valid address to lowercase", func(t *testing.T) {
		got, err := validator.Email("  John.Doe@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "john.doe@example.com", got)
	})

	t.Run("accepts subdomains and allowed punctuation", func(t *testing.T) {
		for _, addr := range []string{"user@example.com", "john.doe@company.co.uk", "admin_123@site.org", "a-b%c@my-host.io"} {
			_, err := validator.Email(addr)
			assert.NoError(t, err, addr)
		}
	})

	t.Run("diagnoses the first failing stage", func(t *testing.T) {
		assert.Equal(t, "EMAIL_EMPTY", emailCode(t, "   "))
		assert.Equal(t, "EMAIL_MISSING_AT", emailCode(t, "plain-address.example.com"))
		assert.Equal(t, "EMAIL_MULTIPLE_AT", emailCode(t, "a@b@c.com"))
		assert.Equal(t, "EMAIL_EMPTY_LOCAL", emailCode(t, "@example.com"))
		assert.Equal(t, "EMAIL_EMPTY_DOMAIN", emailCode(t, "user@"))
		assert.Equal(t, "EMAIL_INVALID_DOMAIN", emailCode(t, "user@localhost"))
		assert.Equal(t, "EMAIL_INVALID_DOMAIN_FORMAT", emailCode(t, "user@.example.com"))
		assert.Equal(t, "EMAIL_INVALID_DOMAIN_FORMAT", emailCode(t, "user@example.com."))
		assert.Equal(t, "EMAIL_INVALID_FORMAT", emailCode(t, "us er@example.com"))
	})

	t.Run("missing at failure explains the expected format", func(t *testing.T) {
		_, err := validator.Email("nope")
		fieldErr, _ := taskerr.AsError(err)
		assert.Equal(t, "Email address must contain '@' symbol", fieldErr.Message)
		assert.Equal(t, "username@domain.com", fieldErr.Details["expected_format"])
		assert.Equal(t, "nope", fieldErr.Value)
	})

	t.Run("single-letter tld is rejected", func(t *testing.T) {
		assert.Equal(t, "EMAIL_INVALID_FORMAT", emailCode(t, "user@example.c"))
	})
}

func TestHexColor(t *testing.T) {
	t.Parallel()

	t.Run("normalizes to uppercase", func(t *testing.T) {
		got, err := validator.HexColor("#ff00aa")
		require.NoError(t, err)
		assert.Equal(t, "#FF00AA", got)
	})

	t.Run("rejects an empty color", func(t *testing.T) {
		_, err := validator.HexColor("")
		fieldErr, ok := taskerr.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "COLOR_EMPTY", fieldErr.Code)
		assert.Equal(t, "color", fieldErr.Field)
		assert.Equal(t, "#RRGGBB", fieldErr.Details["expected_format"])
	})

	t.Run("hints at the missing hash", func(t *testing.T) {
		_, err := validator.HexColor("FF0000")
		fieldErr, _ := taskerr.AsError(err)
		assert.Equal(t, "INVALID_COLOR_FORMAT", fieldErr.Code)
		assert.Equal(t, "Color must start with '#' symbol", fieldErr.Details["hint"])
	})

	t.Run("hints at the wrong length", func(t *testing.T) {
		_, err := validator.HexColor("#FF00")
		fieldErr, _ := taskerr.AsError(err)
		assert.Equal(t, "Color must be exactly 7 characters (# + 6 hex digits), got 5 characters", fieldErr.Details["hint"])
	})

	t.Run("hints at non-hex digits", func(t *testing.T) {
		_, err := validator.HexColor("#GGHHII")
		fieldErr, _ := taskerr.AsError(err)
		assert.Equal(t, "Color must contain only hexadecimal digits (0-9, A-F) after the '#' symbol", fieldErr.Details["hint"])
	})

	t.Run("message names the offending value", func(t *testing.T) {
		_, err := validator.HexColor("red")
		fieldErr, _ := taskerr.AsError(err)
		assert.Equal(t, "Invalid color format: 'red'. Expected format: #RRGGBB", fieldErr.Message)
		assert.Equal(t, "red", fieldErr.Value)
	})
}
