package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE habits (id TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO habits (id, name) VALUES ('h1', 'Read')`); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}
	return dbPath
}

func countHabits(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT count(*) FROM habits").Scan(&n); err != nil {
		t.Fatalf("failed to query %s: %v", path, err)
	}
	return n
}

// withClock makes the Manager's timestamps advance one minute per call.
func withClock(m *Manager, start time.Time) *Manager {
	next := start
	m.now = func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
	return m
}

func TestCreateAndList(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := withClock(NewManager(dbPath), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if countHabits(t, first) != 1 {
		t.Error("backup should contain the source rows")
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 2 || backups[0].Path != second || backups[1].Path != first {
		t.Errorf("List() = %+v, want newest first", backups)
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be recorded")
	}
}

func TestCreateSameSecondAddsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return fixed }

	a, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	b, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("second backup overwrote the first: %s", a)
	}

	backups, _ := mgr.List()
	if len(backups) != 2 {
		t.Errorf("List() returned %d backups, want 2", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := withClock(NewManager(dbPath), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	var last string
	for i := 0; i < MaxBackups+3; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d failed: %v", i, err)
		}
		last = p
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("kept %d backups, want %d", len(backups), MaxBackups)
	}
	if backups[0].Path != last {
		t.Errorf("newest backup %s was rotated away", last)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "habitual-garbage.db", "other-20240101-000000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %+v, want none", backups)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := withClock(NewManager(dbPath), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO habits (id, name) VALUES ('h2', 'Run')"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	previous, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if countHabits(t, dbPath) != 1 {
		t.Error("database should match the snapshot after restore")
	}
	if previous == "" || countHabits(t, previous) != 2 {
		t.Error("the pre-restore state should have been snapshotted")
	}
}

func TestRestoreRejectsInvalidFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore() of a missing file should fail")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("definitely not sqlite, just some bytes padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(junk); err == nil {
		t.Error("Restore() of a non-database file should fail")
	}
	if countHabits(t, dbPath) != 1 {
		t.Error("a failed restore must leave the database untouched")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() should fail when the database does not exist")
	}
}
