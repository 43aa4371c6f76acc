// Package validation holds the pure field checks used by registration.
// Every function takes one string and has no side effects; bad input is
// simply a false result, never an error.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	phoneRe = regexp.MustCompile(`^(\+98|0)?9\d{9}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func IsValidName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= 3
}

// IsValidPhone accepts Iranian mobile numbers: optional +98 or 0 prefix
// followed by 9 and nine more digits.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPassword requires at least 8 characters with at least one lowercase
// letter, one uppercase letter, and one digit.
func IsValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func IsValidBrandName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= 2
}

// NormalizePhone rewrites a mobile number to the canonical 0-prefixed local
// form. Inputs matching none of the recognized shapes are returned unchanged;
// callers validate before normalizing, so the fallback only sees input that
// already failed IsValidPhone.
func NormalizePhone(s string) string {
	switch {
	case strings.HasPrefix(s, "+98"):
		return "0" + s[3:]
	case strings.HasPrefix(s, "0"):
		return s
	case strings.HasPrefix(s, "9") && len(s) == 10:
		return "0" + s
	default:
		return s
	}
}
