// Package sanitizer normalizes untrusted user input before validation and
// storage. Normalization is deliberately conservative: it fixes casing and
// whitespace, never meaning.
package sanitizer

import (
	"regexp"
	"strings"
)

var consecutiveDots = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an email address and collapses
// consecutive dots in the local part. Invalid shapes are returned as-is so
// validation can reject them with a proper field error.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = consecutiveDots.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// TrimSpace trims leading and trailing whitespace from every value in place.
func TrimSpace(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
}
