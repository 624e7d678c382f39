package tools

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Category classifies tool failures for the error string returned to the
// LLM. Only two kinds exist at the contract level: configuration errors
// and execution errors; the finer categories below tell the LLM which
// knob to turn.
type Category string

const (
	CategoryConfig     Category = "Config Error"
	CategoryValidation Category = "Validation Error"
	CategoryAPI        Category = "API Error"
	CategoryDatabase   Category = "Database Error"
	CategoryUnexpected Category = "Unexpected Error"
)

type categorizedError struct {
	category Category
	err      error
}

func (e *categorizedError) Error() string {
	return e.err.Error()
}

func (e *categorizedError) Unwrap() error {
	return e.err
}

// WithCategory attaches a failure category to err.
func WithCategory(category Category, err error) error {
	if err == nil {
		return nil
	}
	return &categorizedError{category: category, err: err}
}

// CategoryError creates a categorized error from a format string.
func CategoryError(category Category, format string, args ...any) error {
	return &categorizedError{category: category, err: errors.Newf(format, args...)}
}

// CategoryOf returns the category attached to err,
// or CategoryUnexpected when none is.
func CategoryOf(err error) Category {
	var ce *categorizedError
	if errors.As(err, &ce) {
		return ce.category
	}
	return CategoryUnexpected
}

// FormatError renders err in the uniform boundary format:
//
//	<tool_name> error: <category> - <details>
func FormatError(toolName string, err error) string {
	return fmt.Sprintf("%s error: %s - %s", toolName, CategoryOf(err), err.Error())
}
