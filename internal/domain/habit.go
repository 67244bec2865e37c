package domain

import "time"

// DateLayout is the calendar date format used for habit logs.
const DateLayout = "2006-01-02"

// Habit is a recurring activity owned by exactly one user.
type Habit struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// DashboardEntry is a habit together with its completion state for one day.
type DashboardEntry struct {
	ID          int64
	Name        string
	Description string
	DoneToday   bool
}

// Dashboard lists a user's habits and their status on Date.
type Dashboard struct {
	Date   string
	Habits []DashboardEntry
}
