// Package password wraps bcrypt hashing and enforces the registration
// password policy.
package password

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinLength = 8

var (
	ErrTooShort      = errors.New("password must be at least 8 characters")
	ErrTooWeak       = errors.New("password must contain at least one letter and one digit")
	ErrWellKnown     = errors.New("password is too common")
	ErrHashingFailed = errors.New("failed to hash password")
)

// commonPasswords are rejected outright regardless of the other rules.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"passw0rd":    {},
	"12345678":    {},
	"123456789":   {},
	"qwerty123":   {},
	"admin123":    {},
	"letmein1":    {},
	"welcome1":    {},
	"iloveyou1":   {},
}

// Hash produces a bcrypt digest with a per-call random salt embedded in
// the output.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. The comparison is
// constant-time; a malformed digest verifies as false and never
// propagates an error to the caller.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// CheckPolicy validates a candidate password before hashing.
func CheckPolicy(plaintext string) error {
	if len(plaintext) < MinLength {
		return ErrTooShort
	}
	if _, found := commonPasswords[strings.ToLower(plaintext)]; found {
		return ErrWellKnown
	}

	var hasLetter, hasDigit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrTooWeak
	}
	return nil
}
