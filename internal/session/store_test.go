package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsUnauthenticated(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "session.json"))

	s, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Active() {
		t.Error("missing file should yield an inactive session")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStoreAt(path)

	if err := store.Save(Session{AccessToken: "tok-123", Email: "grower@example.com"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.AccessToken != "tok-123" || loaded.Email != "grower@example.com" {
		t.Errorf("unexpected session: %+v", loaded)
	}
	if !loaded.Active() {
		t.Error("saved session should be active")
	}
	if loaded.SavedAt.IsZero() {
		t.Error("Save should stamp SavedAt")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStoreAt(path)

	if err := store.Save(Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	s, err := store.Load()
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if s.Active() {
		t.Error("session should be inactive after Clear")
	}

	// Clearing again must not error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStoreAt(path).Load(); err == nil {
		t.Error("expected error for corrupt session file")
	}
}
