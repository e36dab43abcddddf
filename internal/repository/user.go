package repository

import (
	"context"

	"goaltrack/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// Create must enforce username and email uniqueness atomically in the store
// itself and surface a violation as *ConflictError; a check-then-insert in a
// caller would race.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	// GetByLogin matches login against both username and email.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
