package util

import (
	"errors"
	"fmt"
)

var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyInGroup     = errors.New("challenge already belongs to a group")
	ErrTokenExhausted     = errors.New("could not allocate a unique code")
)

// ValidationError is a client mistake; its message is safe to return verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
