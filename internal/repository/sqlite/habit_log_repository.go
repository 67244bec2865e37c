package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habit-tracker/internal/domain"
	"habit-tracker/internal/repository"
)

const createHabitLogsTable = `
CREATE TABLE IF NOT EXISTS habit_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	habit_id INTEGER NOT NULL,
	date TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY(habit_id) REFERENCES habits(id),
	UNIQUE(habit_id, date)
);
`

// toggleHabitLog creates the log as done or flips it in one statement.
// The SELECT yields no row unless the habit belongs to the user.
const toggleHabitLog = `
INSERT INTO habit_logs (habit_id, date, done)
SELECT id, ?, 1 FROM habits WHERE id = ? AND user_id = ?
ON CONFLICT(habit_id, date) DO UPDATE SET done = 1 - habit_logs.done
RETURNING done`

type HabitLogRepository struct {
	db *sql.DB
}

func NewHabitLogRepository(db *sql.DB) repository.HabitLogRepository {
	return &HabitLogRepository{db: db}
}

func (r *HabitLogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHabitLogsTable); err != nil {
		return fmt.Errorf("create habit_logs table: %w", err)
	}
	return nil
}

func (r *HabitLogRepository) Toggle(ctx context.Context, userID, habitID int64, date string) (bool, error) {
	var done int
	err := r.db.QueryRowContext(ctx, toggleHabitLog, date, habitID, userID).Scan(&done)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("habit %d: %w", habitID, repository.ErrNotFound)
		}
		return false, fmt.Errorf("toggle habit log: %w", err)
	}
	return done == 1, nil
}

func (r *HabitLogRepository) DashboardForUser(ctx context.Context, userID int64, date string) ([]domain.DashboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT h.id, h.name, h.description, COALESCE(l.done, 0)
FROM habits h
LEFT JOIN habit_logs l ON l.habit_id = h.id AND l.date = ?
WHERE h.user_id = ?
ORDER BY h.id ASC`, date, userID)
	if err != nil {
		return nil, fmt.Errorf("query dashboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.DashboardEntry{}
	for rows.Next() {
		var (
			entry domain.DashboardEntry
			done  int
		)
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Description, &done); err != nil {
			return nil, fmt.Errorf("scan dashboard entry: %w", err)
		}
		entry.DoneToday = done == 1
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
