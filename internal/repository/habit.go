package repository

import (
	"context"

	"habit-tracker/internal/domain"
)

// HabitRepository exposes persistence operations for habits.
type HabitRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, habit *domain.Habit) (int64, error)
}

// HabitLogRepository manages per-day completion records.
type HabitLogRepository interface {
	Init(ctx context.Context) error
	// Toggle inserts a done log for (habitID, date) or flips the existing one,
	// provided the habit belongs to userID. It returns the resulting state,
	// or ErrNotFound when the user owns no such habit.
	Toggle(ctx context.Context, userID, habitID int64, date string) (bool, error)
	DashboardForUser(ctx context.Context, userID int64, date string) ([]domain.DashboardEntry, error)
}
