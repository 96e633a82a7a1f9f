package services

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrInvalidPassword = errors.New("invalid password")

// PasswordError names the first password rule that was violated.
type PasswordError struct {
	Rule string
}

func (e *PasswordError) Error() string { return e.Rule }

func (e *PasswordError) Is(target error) bool { return target == ErrInvalidPassword }

const minPasswordLen = 8

// ValidatePassword applies the registration policy: at least 8 characters,
// one ASCII letter and one digit. Rules are checked in that order and only
// the first violation is reported.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return &PasswordError{Rule: msgPasswordTooShort}
	}
	if !strings.ContainsFunc(password, isASCIILetter) {
		return &PasswordError{Rule: msgPasswordNoLetter}
	}
	if !strings.ContainsAny(password, "0123456789") {
		return &PasswordError{Rule: msgPasswordNoDigit}
	}
	return nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
