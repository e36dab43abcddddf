package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaltrack/internal/domain"
	"goaltrack/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newUser(username, email string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefak",
	}
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	user := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)

	byEmail, err := repo.GetByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.GetByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, "missing-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ConflictReportsField(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))

	var conflict *repository.ConflictError

	err := repo.Create(ctx, newUser("alice", "other@example.com"))
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, repository.ConflictFieldUsername, conflict.Field)

	err = repo.Create(ctx, newUser("alice2", "alice@example.com"))
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, repository.ConflictFieldEmail, conflict.Field)
}
