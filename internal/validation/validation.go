// Package validation holds the form rules for member registration and staff
// accounts. Every rule is a pure function of the form value.
package validation

import (
	"regexp"
	"strings"
)

// MaxFileSize caps every registration upload.
const MaxFileSize = 10 * 1024 * 1024

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s]{8,20}$`)
	nidPattern   = regexp.MustCompile(`^[0-9]{8,20}$`)
	spaces       = regexp.MustCompile(`\s`)
)

// Errors maps a field key to its message. An empty map means the form can be submitted.
type Errors map[string]string

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) add(key, message string) {
	if message != "" {
		e[key] = message
	}
}

// NormalizeEmail trims and lowercases an address. It is idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseLooseBool accepts "true", "1" and "yes" in any case.
func ParseLooseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func IsPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// IsNID reports whether value is 8 to 20 digits once whitespace is removed.
func IsNID(value string) bool {
	return nidPattern.MatchString(spaces.ReplaceAllString(value, ""))
}

func nonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}
