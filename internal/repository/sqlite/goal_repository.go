package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goaltrack/internal/domain"
	"goaltrack/internal/repository"
)

const createGoalsTable = `
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	description TEXT NOT NULL,
	target REAL NOT NULL,
	progress REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id);
`

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) repository.GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createGoalsTable); err != nil {
		return fmt.Errorf("create goals table: %w", err)
	}
	return nil
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO goals (id, user_id, description, target, progress, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.UserID,
		goal.Description,
		goal.Target,
		goal.Progress,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) Get(ctx context.Context, id, userID string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, description, target, progress, created_at, updated_at
FROM goals
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	return scanGoal(row)
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, description, target, progress, created_at, updated_at
FROM goals
WHERE user_id = ?
ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Description,
			&goal.Target,
			&goal.Progress,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

// Update writes the mutable goal fields, matching on both id and owner. A row
// owned by someone else is reported as ErrNotFound.
func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	goal.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE goals
SET description = ?, target = ?, progress = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		goal.Description,
		goal.Target,
		goal.Progress,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res)
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM goals
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("goal rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanGoal(row *sql.Row) (*domain.Goal, error) {
	var goal domain.Goal
	if err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Description,
		&goal.Target,
		&goal.Progress,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}
	return &goal, nil
}
