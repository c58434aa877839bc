package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func addHabit(t *testing.T, s *Store, id, user, name string, created time.Time) models.Habit {
	t.Helper()
	h := models.Habit{
		ID:        id,
		UserID:    user,
		Name:      name,
		Frequency: models.FrequencyDaily,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := s.AddHabit(h); err != nil {
		t.Fatalf("AddHabit(%s) failed: %v", id, err)
	}
	return h
}

func addLog(t *testing.T, s *Store, id, habitID, at string) {
	t.Helper()
	l := models.CompletionLog{ID: id, HabitID: habitID, UserID: "u1", CompletedAt: date(at)}
	if err := s.AddLog(l); err != nil {
		t.Fatalf("AddLog(%s) failed: %v", id, err)
	}
}

var _ storage.Provider = (*Store)(nil)

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
	if _, _, err := store.SchemaVersion(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("SchemaVersion() error = %v, want ErrNotInitialized", err)
	}
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habitual.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	defer reopened.Close()
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() after Init failed: %v", err)
	}
	n, err := reopened.Migrate(nil)
	if err != nil || n != 0 {
		t.Errorf("Migrate() = %d, %v; want 0, nil on an up-to-date database", n, err)
	}
	current, latest, err := reopened.SchemaVersion()
	if err != nil || current != latest || current == 0 {
		t.Errorf("SchemaVersion() = %d, %d, %v; want matching non-zero versions", current, latest, err)
	}
	if reopened.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", reopened.GetConfigPath(), path)
	}
}

func TestHabitCRUD(t *testing.T) {
	s := setupTestStore(t)
	created := date("2024-03-01T08:00:00Z")
	h := addHabit(t, s, "h1", "u1", "Read", created)

	got, err := s.GetHabit("u1", "h1")
	if err != nil {
		t.Fatalf("GetHabit() failed: %v", err)
	}
	if got.Name != "Read" || got.Frequency != models.FrequencyDaily || !got.CreatedAt.Equal(created) {
		t.Errorf("GetHabit() = %+v", got)
	}

	if _, err := s.GetHabit("u2", "h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() for another user error = %v, want ErrNotFound", err)
	}

	byName, err := s.GetHabitByName("u1", "Read")
	if err != nil || byName.ID != "h1" {
		t.Errorf("GetHabitByName() = %+v, %v", byName, err)
	}

	h.Name = "Read fiction"
	h.Frequency = models.FrequencyWeekly
	h.UpdatedAt = created.Add(time.Hour)
	if err := s.UpdateHabit(h); err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}
	got, _ = s.GetHabit("u1", "h1")
	if got.Name != "Read fiction" || got.Frequency != models.FrequencyWeekly || !got.UpdatedAt.Equal(h.UpdatedAt) {
		t.Errorf("after update got %+v", got)
	}

	missing := h
	missing.ID = "nope"
	if err := s.UpdateHabit(missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateHabit() on missing habit error = %v, want ErrNotFound", err)
	}

	if err := s.AddHabit(models.Habit{ID: "bad", UserID: "u1", Name: "x", Frequency: "hourly"}); err == nil {
		t.Error("AddHabit() accepted an invalid frequency")
	}
}

func TestGetHabitsNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	addHabit(t, s, "old", "u1", "Old", date("2024-01-01T00:00:00Z"))
	addHabit(t, s, "new", "u1", "New", date("2024-02-01T00:00:00Z"))
	addHabit(t, s, "other", "u2", "Other", date("2024-03-01T00:00:00Z"))

	habits, err := s.GetHabits("u1")
	if err != nil {
		t.Fatalf("GetHabits() failed: %v", err)
	}
	if len(habits) != 2 || habits[0].ID != "new" || habits[1].ID != "old" {
		t.Errorf("GetHabits() = %+v, want [new old]", habits)
	}

	none, err := s.GetHabits("nobody")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("GetHabits() for unknown user = %v, %v; want empty slice", none, err)
	}
}

func TestGetLogsOrderingAndBounds(t *testing.T) {
	s := setupTestStore(t)
	addHabit(t, s, "h1", "u1", "Read", date("2024-01-01T00:00:00Z"))
	addLog(t, s, "l1", "h1", "2024-01-01T09:00:00Z")
	addLog(t, s, "l3", "h1", "2024-01-03T23:59:59Z")
	addLog(t, s, "l2", "h1", "2024-01-02T10:00:00+02:00")

	logs, err := s.GetLogs("h1", nil, nil)
	if err != nil {
		t.Fatalf("GetLogs() failed: %v", err)
	}
	if len(logs) != 3 || logs[0].ID != "l3" || logs[1].ID != "l2" || logs[2].ID != "l1" {
		t.Fatalf("GetLogs() order = %v, want l3 l2 l1", ids(logs))
	}
	if logs[1].CompletedAt.Location() != time.UTC || logs[1].CompletedAt.Hour() != 8 {
		t.Errorf("completed_at should round-trip as UTC, got %v", logs[1].CompletedAt)
	}

	start := date("2024-01-02T00:00:00Z")
	end := date("2024-01-03T23:59:59Z")
	bounded, err := s.GetLogs("h1", &start, &end)
	if err != nil {
		t.Fatalf("GetLogs() with bounds failed: %v", err)
	}
	if len(bounded) != 2 || bounded[0].ID != "l3" || bounded[1].ID != "l2" {
		t.Errorf("bounded GetLogs() = %v, want l3 l2 (inclusive)", ids(bounded))
	}

	onlyEnd, _ := s.GetLogs("h1", nil, &start)
	if len(onlyEnd) != 1 || onlyEnd[0].ID != "l1" {
		t.Errorf("end-bounded GetLogs() = %v, want l1", ids(onlyEnd))
	}
}

func TestDeleteHabitCascadesLogs(t *testing.T) {
	s := setupTestStore(t)
	addHabit(t, s, "h1", "u1", "Read", date("2024-01-01T00:00:00Z"))
	addLog(t, s, "l1", "h1", "2024-01-01T09:00:00Z")

	if err := s.DeleteHabit("u2", "h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteHabit() by another user error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteHabit("u1", "h1"); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	if _, err := s.GetHabit("u1", "h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("habit still present after delete: %v", err)
	}
	logs, err := s.GetLogs("h1", nil, nil)
	if err != nil || len(logs) != 0 {
		t.Errorf("logs after habit delete = %v, %v; want none", ids(logs), err)
	}
}

func TestDeleteLog(t *testing.T) {
	s := setupTestStore(t)
	addHabit(t, s, "h1", "u1", "Read", date("2024-01-01T00:00:00Z"))
	addLog(t, s, "l1", "h1", "2024-01-01T09:00:00Z")

	if err := s.DeleteLog("u1", "l1"); err != nil {
		t.Fatalf("DeleteLog() failed: %v", err)
	}
	if err := s.DeleteLog("u1", "l1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteLog() error = %v, want ErrNotFound", err)
	}
}

func TestAddLogForUnknownHabit(t *testing.T) {
	s := setupTestStore(t)
	err := s.AddLog(models.CompletionLog{ID: "l1", HabitID: "ghost", UserID: "u1", CompletedAt: time.Now()})
	if err == nil {
		t.Error("AddLog() should fail the foreign key check for an unknown habit")
	}
}

func ids(logs []models.CompletionLog) []string {
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.ID
	}
	return out
}
