package taskkit

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
	"github.com/dmitrymomot/taskkit/pkg/validator"
)

// DefaultTagColor is applied when a tag is created without an explicit color.
const DefaultTagColor = "#808080"

const maxTagNameLen = 50

// Tag is an immutable label attached to tasks. Build tags with NewTag; the
// zero value is not a valid tag.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTag validates and builds a tag. The name is stored trimmed, the color
// normalized to uppercase hex. An empty color takes DefaultTagColor. All
// field failures are reported together as a taskerr.Collection.
func NewTag(name, color string) (Tag, error) {
	var tag Tag
	err := validator.Batch(func(vc *validator.Context) error {
		trimmed, ok := validator.Value(vc, func() (string, error) {
			v, err := validator.NotEmpty("name", name)
			return v, recode(err, "TAG_NAME_EMPTY")
		})
		if ok && utf8.RuneCountInString(trimmed) > maxTagNameLen {
			vc.AddError(taskerr.NewField("name", fmt.Sprintf("Tag name cannot exceed %d characters", maxTagNameLen)).
				WithCode("TAG_NAME_TOO_LONG").
				WithValue(name).
				WithDetail("max_length", maxTagNameLen).
				WithDetail("current_length", utf8.RuneCountInString(trimmed)))
		}
		tag.Name = trimmed

		tag.Color = DefaultTagColor
		if color != "" {
			normalized, _ := validator.Value(vc, func() (string, error) {
				v, err := validator.HexColor(color)
				if fe, isRecord := taskerr.AsError(err); isRecord {
					return v, fe.WithCode("TAG_COLOR_INVALID_FORMAT").
						WithMessage(fmt.Sprintf("Tag color must be in hex format '#RRGGBB', got '%s'", color))
				}
				return v, err
			})
			tag.Color = normalized
		}
		return nil
	})
	if err != nil {
		return Tag{}, err
	}
	return tag, nil
}
