package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist, or exists but is not
// visible to the caller (ownership mismatch). The two cases are deliberately
// indistinguishable.
var ErrNotFound = errors.New("record not found")

// Conflict field names reported by ConflictError.
const (
	ConflictFieldUsername = "username"
	ConflictFieldEmail    = "email"
)

// ConflictError reports a uniqueness violation on insert, carrying which field
// collided. The store decides the field; callers never inspect driver messages.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}
