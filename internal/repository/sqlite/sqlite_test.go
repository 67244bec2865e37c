package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"habit-tracker/internal/domain"
	"habit-tracker/internal/repository"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "nested", "habits.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := InitAll(ctx, NewUserRepository(db), NewHabitRepository(db), NewHabitLogRepository(db)); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *sql.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: "hash"}
	if _, err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createHabit(t *testing.T, db *sql.DB, userID int64, name string) *domain.Habit {
	t.Helper()
	habit := &domain.Habit{UserID: userID, Name: name}
	if _, err := NewHabitRepository(db).Create(context.Background(), habit); err != nil {
		t.Fatalf("create habit %s: %v", name, err)
	}
	return habit
}

// logState reads the stored log row for (habitID, date) without going
// through the repository.
func logState(t *testing.T, db *sql.DB, habitID int64, date string) (done, found bool) {
	t.Helper()
	var v int
	err := db.QueryRow(`SELECT done FROM habit_logs WHERE habit_id = ? AND date = ?`, habitID, date).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false
	}
	if err != nil {
		t.Fatalf("read habit log: %v", err)
	}
	return v == 1, true
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	if alice.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != alice.ID || byName.PasswordHash != "hash" {
		t.Errorf("unexpected user %+v", byName)
	}

	byID, err := repo.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("expected alice, got %q", byID.Username)
	}

	if _, err := repo.GetByUsername(ctx, "Alice"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("username lookup must be case-sensitive, got %v", err)
	}

	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"})
	if !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestHabitRepositoryCreate(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")

	habit := &domain.Habit{UserID: alice.ID, Name: "Run", Description: "  5k  "}
	id, err := NewHabitRepository(db).Create(context.Background(), habit)
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if id == 0 || habit.ID != id || habit.CreatedAt.IsZero() {
		t.Errorf("unexpected habit %+v", habit)
	}

	var (
		userID      int64
		name, descr string
	)
	if err := db.QueryRow(`SELECT user_id, name, description FROM habits WHERE id = ?`, id).Scan(&userID, &name, &descr); err != nil {
		t.Fatalf("select habit: %v", err)
	}
	if userID != alice.ID || name != "Run" || descr != "  5k  " {
		t.Errorf("stored habit mismatch: %d %q %q", userID, name, descr)
	}
}

func TestHabitRepositoryRejectsUnknownOwner(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewHabitRepository(db).Create(context.Background(), &domain.Habit{UserID: 999, Name: "Run"})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestHabitLogToggle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHabitLogRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	run := createHabit(t, db, alice.ID, "Run")
	const day = "2026-10-15"

	if _, found := logState(t, db, run.ID, day); found {
		t.Fatal("expected no log yet")
	}

	for i, want := range []bool{true, false, true} {
		done, err := repo.Toggle(ctx, alice.ID, run.ID, day)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if done != want {
			t.Errorf("toggle %d: expected done=%v, got %v", i, want, done)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM habit_logs WHERE habit_id = ?`, run.ID).Scan(&count); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one log row, got %d", count)
	}

	if done, found := logState(t, db, run.ID, day); !found || !done {
		t.Errorf("expected stored log to be done, got done=%v found=%v", done, found)
	}

	// another day starts fresh
	done, err := repo.Toggle(ctx, alice.ID, run.ID, "2026-10-16")
	if err != nil {
		t.Fatalf("toggle next day: %v", err)
	}
	if !done {
		t.Error("first toggle on a new day must mark done")
	}
}

func TestHabitLogToggleRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHabitLogRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	mallory := createUser(t, db, "mallory")
	run := createHabit(t, db, alice.ID, "Run")

	if _, err := repo.Toggle(ctx, mallory.ID, run.ID, "2026-10-15"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign habit, got %v", err)
	}
	if _, err := repo.Toggle(ctx, alice.ID, 12345, "2026-10-15"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing habit, got %v", err)
	}
	if _, found := logState(t, db, run.ID, "2026-10-15"); found {
		t.Error("rejected toggle must not create a log")
	}
}

func TestDashboardForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHabitLogRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	run := createHabit(t, db, alice.ID, "Run")
	read := createHabit(t, db, alice.ID, "Read")
	createHabit(t, db, bob.ID, "Swim")

	if _, err := repo.Toggle(ctx, alice.ID, read.ID, "2026-10-15"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := repo.Toggle(ctx, alice.ID, run.ID, "2026-10-14"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	entries, err := repo.DashboardForUser(ctx, alice.ID, "2026-10-15")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != run.ID || entries[0].DoneToday {
		t.Errorf("run should be first and not done today: %+v", entries[0])
	}
	if entries[1].ID != read.ID || !entries[1].DoneToday {
		t.Errorf("read should be done today: %+v", entries[1])
	}

	empty, err := repo.DashboardForUser(ctx, 999, "2026-10-15")
	if err != nil {
		t.Fatalf("dashboard for unknown user: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}
