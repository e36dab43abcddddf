package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaltrack/internal/domain"
	"goaltrack/internal/repository"
)

type fakeGoalRepo struct {
	mu    sync.Mutex
	goals map[string]*domain.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[string]*domain.Goal)}
}

func (r *fakeGoalRepo) Init(ctx context.Context) error { return nil }

func (r *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	cp := *goal
	r.goals[goal.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) Get(ctx context.Context, id, userID string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.goals[id]; ok && g.UserID == userID {
		cp := *g
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGoalRepo) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.goals[goal.ID]; ok && g.UserID == goal.UserID {
		goal.CreatedAt = g.CreatedAt
		goal.UpdatedAt = time.Now().UTC()
		cp := *goal
		r.goals[goal.ID] = &cp
		return nil
	}
	return repository.ErrNotFound
}

func (r *fakeGoalRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.goals[id]; ok && g.UserID == userID {
		delete(r.goals, id)
		return nil
	}
	return repository.ErrNotFound
}

func goalInput(description string, target, progress float64) GoalInput {
	return GoalInput{Description: description, Target: &target, Progress: &progress}
}

func TestGoalCreateAndList(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(newFakeGoalRepo())
	ctx := context.Background()

	goal, err := svc.Create(ctx, "user-a", goalInput("  Read 12 books  ", 12, 3))
	require.NoError(t, err)
	assert.Equal(t, "Read 12 books", goal.Description, "description must be trimmed")
	assert.Equal(t, "user-a", goal.UserID)
	assert.NotEmpty(t, goal.ID)

	goals, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, goals, 1)

	other, err := svc.List(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGoalValidationPerField(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(newFakeGoalRepo())

	_, err := svc.Create(context.Background(), "user-a", goalInput("ab", 0, -1))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "Description must be at least 3 characters long", fields["description"])
	assert.Equal(t, "Target must be a positive number", fields["target"])
	assert.Equal(t, "Progress must be a non-negative number", fields["progress"])
}

func TestGoalValidationMissingNumbers(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(newFakeGoalRepo())

	_, err := svc.Create(context.Background(), "user-a", GoalInput{Description: "Run a marathon"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "Target is required", fields["target"])
	assert.Equal(t, "Progress is required", fields["progress"])
}

func TestGoalOwnershipHidesForeignGoals(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(newFakeGoalRepo())
	ctx := context.Background()

	goal, err := svc.Create(ctx, "user-a", goalInput("Save money", 1000, 50))
	require.NoError(t, err)

	// user-b must see not-found, never a forbidden variant
	_, err = svc.Update(ctx, "user-b", goal.ID, goalInput("Stolen", 1, 0))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.Delete(ctx, "user-b", goal.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// untouched for the owner
	goals, err := svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Save money", goals[0].Description)
}

func TestGoalUpdateAndDelete(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(newFakeGoalRepo())
	ctx := context.Background()

	goal, err := svc.Create(ctx, "user-a", goalInput("Save money", 1000, 50))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-a", goal.ID, goalInput("Save more money", 2000, 100))
	require.NoError(t, err)
	assert.Equal(t, "Save more money", updated.Description)
	assert.Equal(t, float64(2000), updated.Target)

	require.NoError(t, svc.Delete(ctx, "user-a", goal.ID))
	err = svc.Delete(ctx, "user-a", goal.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGoalUpdateUnknownID(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(newFakeGoalRepo())

	_, err := svc.Update(context.Background(), "user-a", "missing-id", goalInput("Whatever", 1, 0))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
