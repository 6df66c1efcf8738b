package utils

import (
	"regexp"
	"time"
)

// emailRe is a lenient email shape check: something@something.something
// with no whitespace.  Full RFC validation is deliberately not attempted.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether the given string looks like an email address.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsStrongPassword reports whether the password is at least eight
// characters and contains at least one uppercase letter, one lowercase
// letter and one digit.  Implemented with a scan instead of a regexp
// because RE2 has no lookahead.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// IsFutureDate reports whether t is strictly after the current UTC time.
// Used to validate activity dates on create and update.
func IsFutureDate(t time.Time) bool {
	return t.After(time.Now().UTC())
}
