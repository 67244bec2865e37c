package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"habit-tracker/internal/domain"
	"habit-tracker/internal/repository"
)

// HabitService coordinates habit creation, the daily dashboard and tracking.
type HabitService interface {
	AddHabit(ctx context.Context, ownerID int64, name, description string) (*domain.Habit, error)
	Dashboard(ctx context.Context, ownerID int64) (*domain.Dashboard, error)
	Track(ctx context.Context, ownerID, habitID int64) (bool, error)
	Today() string
}

// HabitOption customizes a HabitService.
type HabitOption func(*habitService)

// WithClock overrides the time source used to decide what "today" is.
func WithClock(now func() time.Time) HabitOption {
	return func(s *habitService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone in which calendar days are computed.
func WithLocation(loc *time.Location) HabitOption {
	return func(s *habitService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type habitService struct {
	habits repository.HabitRepository
	logs   repository.HabitLogRepository
	now    func() time.Time
	loc    *time.Location
}

func NewHabitService(habits repository.HabitRepository, logs repository.HabitLogRepository, opts ...HabitOption) HabitService {
	s := &habitService{
		habits: habits,
		logs:   logs,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *habitService) Today() string {
	return s.now().In(s.loc).Format(domain.DateLayout)
}

func (s *habitService) AddHabit(ctx context.Context, ownerID int64, name, description string) (*domain.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("must provide habit name")
	}

	habit := &domain.Habit{
		UserID:      ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	if _, err := s.habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *habitService) Dashboard(ctx context.Context, ownerID int64) (*domain.Dashboard, error) {
	today := s.Today()
	entries, err := s.logs.DashboardForUser(ctx, ownerID, today)
	if err != nil {
		return nil, err
	}
	return &domain.Dashboard{Date: today, Habits: entries}, nil
}

// Track flips today's completion flag for the habit, creating it as done on
// the first call of the day.
func (s *habitService) Track(ctx context.Context, ownerID, habitID int64) (bool, error) {
	if habitID <= 0 {
		return false, invalid("invalid habit")
	}

	done, err := s.logs.Toggle(ctx, ownerID, habitID, s.Today())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrHabitNotFound
		}
		return false, err
	}
	return done, nil
}
