package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"habit-tracker/internal/domain"
	"habit-tracker/internal/repository"
)

const createHabitsTable = `
CREATE TABLE IF NOT EXISTS habits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits(user_id);
`

type HabitRepository struct {
	db *sql.DB
}

func NewHabitRepository(db *sql.DB) repository.HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHabitsTable); err != nil {
		return fmt.Errorf("create habits table: %w", err)
	}
	return nil
}

func (r *HabitRepository) Create(ctx context.Context, habit *domain.Habit) (int64, error) {
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO habits (user_id, name, description, created_at)
VALUES (?, ?, ?, ?)`,
		habit.UserID,
		habit.Name,
		habit.Description,
		habit.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert habit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("habit last insert id: %w", err)
	}
	habit.ID = id
	return id, nil
}
