package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials covers both unknown login and wrong password so a
	// caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registration collides on the username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registration collides on the email.
	ErrEmailTaken = errors.New("email already exists")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every field that failed syntactic validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
