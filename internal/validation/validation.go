// Package validation holds the pure field validators shared by every form.
// Each validator returns an error message, "" meaning valid; none of them
// touch I/O, so they can run on either side of the wire.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Fields maps field name to error message. An empty map means the form is
// valid.
type Fields map[string]string

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const specialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// PasswordStrength scores a password 0..5: one point each for length >= 8,
// an uppercase letter, a lowercase letter, a digit and a special character.
// Used for UX feedback only, never enforced server-side.
func PasswordStrength(password string) int {
	strength := 0

	if len(password) >= 8 {
		strength++
	}
	if strings.ContainsFunc(password, unicode.IsUpper) {
		strength++
	}
	if strings.ContainsFunc(password, unicode.IsLower) {
		strength++
	}
	if strings.ContainsFunc(password, unicode.IsDigit) {
		strength++
	}
	if strings.ContainsAny(password, specialChars) {
		strength++
	}

	return strength
}

func Email(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !ValidEmail(value) {
		return "Please enter a valid email address"
	}
	return ""
}

// Password checks presence and minimum length; with requireStrength it
// additionally demands a strength score of at least 3.
func Password(value string, minLength int, requireStrength bool) string {
	if value == "" {
		return "Password is required"
	}
	if len(value) < minLength {
		return fmt.Sprintf("Password must be at least %d characters", minLength)
	}
	if requireStrength && PasswordStrength(value) < 3 {
		return "Password must contain uppercase, lowercase, and numbers"
	}
	return ""
}

func ConfirmPassword(password, confirmPassword string) string {
	if confirmPassword == "" {
		return "Please confirm your password"
	}
	if password != confirmPassword {
		return "Passwords do not match"
	}
	return ""
}

func FirstName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "First name is required"
	}
	if len(strings.TrimSpace(value)) < 2 {
		return "First name must be at least 2 characters"
	}
	return ""
}

func LastName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Last name is required"
	}
	if len(strings.TrimSpace(value)) < 2 {
		return "Last name must be at least 2 characters"
	}
	return ""
}

// Checkbox validates a required checkbox such as the terms agreement.
func Checkbox(checked bool, fieldName string) string {
	if fieldName == "" {
		fieldName = "This field"
	}
	if !checked {
		return fieldName + " is required"
	}
	return ""
}
