package taskkit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskkit"
	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

func TestNewTag(t *testing.T) {
	t.Parallel()

	t.Run("trims name and uppercases color", func(t *testing.T) {
		tag, err := taskkit.NewTag("  urgent  ", "#ff0000")
		require.NoError(t, err)
		assert.Equal(t, "urgent", tag.Name)
		assert.Equal(t, "#FF0000", tag.Color)
	})

	t.Run("empty color takes the default", func(t *testing.T) {
		tag, err := taskkit.NewTag("later", "")
		require.NoError(t, err)
		assert.Equal(t, taskkit.DefaultTagColor, tag.Color)
	})

	t.Run("whitespace name fails with tag specific code", func(t *testing.T) {
		_, err := taskkit.NewTag("   ", "#FF0000")
		require.Error(t, err)

		failures, ok := taskerr.AsCollection(err)
		require.True(t, ok)
		require.Len(t, failures, 1)
		assert.Equal(t, "TAG_NAME_EMPTY", failures[0].Code)
		assert.Equal(t, "name", failures[0].Field)
		assert.Contains(t, strings.ToLower(failures[0].Message), "cannot be empty")
		assert.Contains(t, failures[0].Details, "suggestion")
	})

	t.Run("name over fifty characters fails", func(t *testing.T) {
		_, err := taskkit.NewTag(strings.Repeat("x", 51), "")
		require.Error(t, err)

		failures, ok := taskerr.AsCollection(err)
		require.True(t, ok)
		require.Len(t, failures, 1)
		assert.Equal(t, "TAG_NAME_TOO_LONG", failures[0].Code)
		assert.Equal(t, 50, failures[0].Details["max_length"])
		assert.Equal(t, 51, failures[0].Details["current_length"])
	})

	t.Run("name of exactly fifty characters passes", func(t *testing.T) {
		tag, err := taskkit.NewTag(strings.Repeat("x", 50), "")
		require.NoError(t, err)
		assert.Len(t, tag.Name, 50)
	})

	t.Run("invalid color fails with tag specific message", func(t *testing.T) {
		for _, color := range []string{"red", "FF0000", "#FFF", "#GGGGGG", "123456", "#12345"} {
			_, err := taskkit.NewTag("test", color)
			require.Error(t, err, "color %q", color)

			failures, ok := taskerr.AsCollection(err)
			require.True(t, ok)
			require.Len(t, failures, 1)
			assert.Equal(t, "TAG_COLOR_INVALID_FORMAT", failures[0].Code)
			assert.Equal(t, "color", failures[0].Field)
			assert.Contains(t, strings.ToLower(failures[0].Message), "hex format")
			assert.Equal(t, color, failures[0].Value)
			assert.Contains(t, failures[0].Details["expected_format"], "#RRGGBB")
		}
	})

	t.Run("bad name and bad color are reported together", func(t *testing.T) {
		_, err := taskkit.NewTag("", "nope")
		require.Error(t, err)

		failures, ok := taskerr.AsCollection(err)
		require.True(t, ok)
		require.Len(t, failures, 2)
		assert.Equal(t, "TAG_NAME_EMPTY", failures[0].Code)
		assert.Equal(t, "TAG_COLOR_INVALID_FORMAT", failures[1].Code)
	})
}
