package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

// MinLen validates that a string has at least min bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must contain at least %d characters", min),
		},
	}
}

// MaxLen validates that a string has at most max bytes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must contain at most %d characters", max),
		},
	}
}

// ValidEmail validates that a string is a well-formed email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			// mail.ParseAddress accepts addresses without a dotted domain,
			// which web forms should reject.
			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 || parts[0] == "" {
				return false
			}
			domain := parts[1]
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// GreaterThan validates that a numeric value is strictly greater than the limit.
func GreaterThan[T Numeric](field string, value T, limit T) Rule {
	return Rule{
		Check: func() bool {
			return value > limit
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be greater than %v", limit),
		},
	}
}

// Min validates that a numeric value is at least min.
func Min[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
		},
	}
}

// OneOf validates that a string is a member of the allowed set.
func OneOf(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		},
	}
}

// Matches validates that two fields carry the same value. The error is
// attached to the second field so the message lands on the confirmation input.
func Matches(field, value, other string, message string) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:   field,
			Message: message,
		},
	}
}

// WithMessage overrides the rule's default message with a form-specific one.
func WithMessage(rule Rule, message string) Rule {
	rule.Error.Message = message
	return rule
}

// ValidUUID validates that a string parses as a UUID.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid identifier",
		},
	}
}

// ValidDate validates that a string parses with the given layout.
func ValidDate(field, value, layout string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(layout, value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a date in %s format", layout),
		},
	}
}
