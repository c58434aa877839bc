package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func newContext(t *testing.T, path string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(path)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.DB = path
	var out bytes.Buffer
	return &cli.Context{Store: store, Config: cfg, Out: &out}, &out
}

func TestInitCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.db")
	ctx, out := newContext(t, path)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file missing: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte(path)) {
		t.Errorf("output should mention the database path, got %q", out.String())
	}

	out.Reset()
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("up to date")) {
		t.Errorf("migrate on a fresh database should be a no-op, got %q", out.String())
	}
}

func TestInitForceResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.db")
	ctx, _ := newContext(t, path)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	habit := models.Habit{ID: "h1", UserID: ctx.UserID(), Name: "Read", Frequency: models.FrequencyDaily, CreatedAt: time.Now()}
	if err := ctx.Store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	habits, err := ctx.Store.GetHabits(ctx.UserID())
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Errorf("expected an empty database after --force, got %d habits", len(habits))
	}

	backups, err := backup.NewManager(path).List()
	if err != nil || len(backups) != 1 {
		t.Errorf("expected one backup of the reset database, got %d (%v)", len(backups), err)
	}
}

func TestInitCopiesFromSource(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")
	source, _ := newContext(t, sourcePath)
	if err := (&InitCmd{}).Run(source); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2024, 4, 1, 7, 0, 0, 0, time.UTC)
	habit := models.Habit{ID: "h1", UserID: source.UserID(), Name: "Run", Frequency: models.FrequencyWeekly, CreatedAt: at}
	if err := source.Store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}
	entry := models.CompletionLog{ID: "l1", HabitID: "h1", UserID: source.UserID(), CompletedAt: at}
	if err := source.Store.AddLog(entry); err != nil {
		t.Fatal(err)
	}
	source.Store.Close()

	dest, out := newContext(t, filepath.Join(dir, "dest.db"))
	if err := (&InitCmd{Source: sourcePath}).Run(dest); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("Copied 1 habits and 1 completions")) {
		t.Errorf("unexpected output %q", out.String())
	}

	logs, err := dest.Store.GetLogs("h1", nil, nil)
	if err != nil || len(logs) != 1 || !logs[0].CompletedAt.Equal(at) {
		t.Errorf("copied logs = %+v, %v", logs, err)
	}
}

func TestInitForceRejectsSameSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.db")
	ctx, _ := newContext(t, path)
	if err := (&InitCmd{Force: true, Source: path}).Run(ctx); err == nil {
		t.Error("init --force with itself as source should fail")
	}
}
