package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/gamebase/internal/model"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("not found")

// FieldError is a single message attached to a form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries one message per invalid field. It is meant to be
// shown inline in the originating form, not as an error page.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Messages returns the field messages in order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return msgs
}

// For returns the message for field, or "" if the field is valid.
func (e *ValidationError) For(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// GameFormError is a ValidationError for the game form together with the
// category checkboxes needed to render it again, with the submitted
// selection preserved.
type GameFormError struct {
	*ValidationError
	Categories []CategoryOption
}

func (e *GameFormError) Unwrap() error { return e.ValidationError }

// InUseError refuses a category delete while games still reference it.
// Category is nil if the category itself is already gone.
type InUseError struct {
	CategoryID string
	Category   *model.Category
	Games      []model.GameSummary
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("category %s is referenced by %d games", e.CategoryID, len(e.Games))
}
