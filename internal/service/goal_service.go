package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"goaltrack/internal/domain"
	"goaltrack/internal/repository"
)

// GoalInput carries the user-supplied goal fields. Target and Progress are
// pointers so a missing field is distinguishable from an explicit zero.
type GoalInput struct {
	Description string
	Target      *float64
	Progress    *float64
}

// GoalService coordinates goal CRUD. Every operation is scoped to the calling
// user; a goal owned by someone else behaves exactly like a missing one.
type GoalService interface {
	Create(ctx context.Context, userID string, input GoalInput) (*domain.Goal, error)
	List(ctx context.Context, userID string) ([]domain.Goal, error)
	Update(ctx context.Context, userID, id string, input GoalInput) (*domain.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}

type goalService struct {
	goals repository.GoalRepository
}

func NewGoalService(goals repository.GoalRepository) GoalService {
	return &goalService{goals: goals}
}

func (s *goalService) Create(ctx context.Context, userID string, input GoalInput) (*domain.Goal, error) {
	input.Description = strings.TrimSpace(input.Description)
	if err := validateGoal(input); err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: input.Description,
		Target:      *input.Target,
		Progress:    *input.Progress,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *goalService) Update(ctx context.Context, userID, id string, input GoalInput) (*domain.Goal, error) {
	input.Description = strings.TrimSpace(input.Description)
	if err := validateGoal(input); err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		ID:          id,
		UserID:      userID,
		Description: input.Description,
		Target:      *input.Target,
		Progress:    *input.Progress,
	}
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return s.goals.Get(ctx, id, userID)
}

func (s *goalService) Delete(ctx context.Context, userID, id string) error {
	return s.goals.Delete(ctx, id, userID)
}

func validateGoal(input GoalInput) error {
	ve := &ValidationError{}

	switch {
	case input.Description == "":
		ve.add("description", "Description is required")
	case len(input.Description) < 3:
		ve.add("description", "Description must be at least 3 characters long")
	case len(input.Description) > 200:
		ve.add("description", "Description must be at most 200 characters long")
	}

	switch {
	case input.Target == nil:
		ve.add("target", "Target is required")
	case *input.Target <= 0:
		ve.add("target", "Target must be a positive number")
	}

	switch {
	case input.Progress == nil:
		ve.add("progress", "Progress is required")
	case *input.Progress < 0:
		ve.add("progress", "Progress must be a non-negative number")
	}

	return ve.orNil()
}
