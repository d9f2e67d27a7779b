package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Numeric constrains the numeric rule helpers to built-in number types.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ValidationError represents a single failed rule attached to a form field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is the ordered collection of failed rules for one submission.
// It implements error so services can return it through normal error paths.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error is attached to the given field.
func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the ordered messages attached to the given field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the distinct field names that have errors, in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// FieldMap converts the collection into a field -> messages mapping suitable
// for JSON responses.
func (ve ValidationErrors) FieldMap() map[string][]string {
	if len(ve) == 0 {
		return nil
	}
	m := make(map[string][]string, len(ve))
	for _, err := range ve {
		m[err.Field] = append(m[err.Field], err.Message)
	}
	return m
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes the rules in order and returns ValidationErrors if any failed.
// Validation is all-or-nothing: every rule runs, nothing short-circuits.
func Apply(rules ...Rule) error {
	var failed ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			failed = append(failed, rule.Error)
		}
	}

	if failed.IsEmpty() {
		return nil
	}

	return failed
}

// Extract pulls ValidationErrors out of an error chain, or nil if absent.
func Extract(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}

	return nil
}

// IsValidationError reports whether err carries field-level validation errors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
