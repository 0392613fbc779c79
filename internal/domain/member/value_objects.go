package member

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidFullName = errors.New("full name must not be empty")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email string

func NewEmail(raw string) (Email, error) {
	e := strings.TrimSpace(strings.ToLower(raw))
	if !emailRegex.MatchString(e) {
		return "", ErrInvalidEmail
	}
	return Email(e), nil
}

func (e Email) String() string {
	return string(e)
}

type FullName string

func NewFullName(raw string) (FullName, error) {
	n := strings.TrimSpace(raw)
	if n == "" {
		return "", ErrInvalidFullName
	}
	return FullName(n), nil
}

func (n FullName) String() string {
	return string(n)
}
