package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks review content before it is stored
type Validator struct {
	maxLength int
}

// NewValidator creates a validator; maxLength is in runes, 0 disables the limit
func NewValidator(maxLength int) *Validator {
	return &Validator{maxLength: maxLength}
}

// IsBlank reports whether content has no non-space characters
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// ValidateContent validates review text
func (v *Validator) ValidateContent(content string) []ValidationError {
	var errors []ValidationError

	if !utf8.ValidString(content) {
		errors = append(errors, ValidationError{Field: "content", Message: "content is not valid UTF-8"})
	}

	// PostgreSQL TEXT cannot hold NUL bytes
	if strings.ContainsRune(content, 0) {
		errors = append(errors, ValidationError{Field: "content", Message: "content contains NUL bytes"})
	}

	if v.maxLength > 0 {
		if n := utf8.RuneCountInString(content); n > v.maxLength {
			errors = append(errors, ValidationError{
				Field:   "content",
				Message: fmt.Sprintf("content exceeds %d characters", v.maxLength),
				Value:   n,
			})
		}
	}

	return errors
}

// Join flattens validation errors into one message
func Join(errors []ValidationError) string {
	msgs := make([]string, len(errors))
	for i, e := range errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
