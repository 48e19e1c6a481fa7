package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// UserEmail is a validated email address. The only way to obtain one is
// ParseEmail, so holding a UserEmail means validation already happened.
type UserEmail string

// ParseEmail validates and normalizes a raw email string. Leading and
// trailing whitespace is trimmed; anything that doesn't look like
// local@domain.tld fails with ErrInvalidEmail.
func ParseEmail(raw string) (UserEmail, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: email is blank", ErrInvalidEmail)
	}
	if !strings.Contains(s, "@") {
		return "", fmt.Errorf("%w: missing @ in %q", ErrInvalidEmail, s)
	}
	if !emailPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, s)
	}
	return UserEmail(s), nil
}

func (e UserEmail) String() string { return string(e) }
