package repository

import (
	"context"

	"goaltrack/internal/domain"
)

// GoalRepository exposes persistence operations for Goal records. Every
// operation that names a goal id also names the owner; a row that matches the
// id but not the owner yields ErrNotFound.
type GoalRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, goal *domain.Goal) error
	Get(ctx context.Context, id, userID string) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id, userID string) error
}
