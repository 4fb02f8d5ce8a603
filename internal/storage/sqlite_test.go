package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreMigrationsApplied(t *testing.T) {
	store := openTestStore(t)

	version, err := SchemaVersion(store.DB(), "sqlite3")
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != 2 {
		t.Errorf("schema version = %d, expected 2", version)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetBestScore("flappy", 12); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore("flappy")
	if err != nil {
		t.Fatal(err)
	}
	if best != 12 {
		t.Errorf("BestScore() after reopen = %d, expected 12", best)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSQLiteBackend(t *testing.T) {
	runBackendSuite(t, func(t *testing.T) Backend { return openTestStore(t) })
}

func TestMemoryBackend(t *testing.T) {
	runBackendSuite(t, func(t *testing.T) Backend { return NewMemory() })
}

func TestOpenDispatch(t *testing.T) {
	mem, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	if _, ok := mem.(*Memory); !ok {
		t.Errorf("Open(memory) = %T, expected *Memory", mem)
	}

	file, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open(path) failed: %v", err)
	}
	defer file.Close()
	if _, ok := file.(*Store); !ok {
		t.Errorf("Open(path) = %T, expected *Store", file)
	}

	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := map[string]bool{
		"postgres://u:p@localhost/db":   true,
		"postgresql://localhost/scores": true,
		"~/.flappy/scores.db":           false,
		"memory:":                       false,
	}
	for dsn, want := range tests {
		if got := isPostgresDSN(dsn); got != want {
			t.Errorf("isPostgresDSN(%q) = %v, expected %v", dsn, got, want)
		}
	}
}
