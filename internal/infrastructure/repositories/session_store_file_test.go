package repositories

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrozdorothy3-debug/swed/domain"
)

func TestFileSessionStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileSessionStore(dir, "auth_state_v1")

	saved := &domain.Session{
		Authenticated: true,
		Username:      "Neil Harryman",
		Role:          domain.RoleCustomer,
		Token:         "token_abc",
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil after Save")
	}
	if *loaded != *saved {
		t.Errorf("Load() = %+v, want %+v", loaded, saved)
	}
}

func TestFileSessionStore_MissingFile(t *testing.T) {
	store := NewFileSessionStore(t.TempDir(), "auth_state_v1")

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Load() = %+v, want nil for a missing file", loaded)
	}
}

func TestFileSessionStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth_state_v1.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileSessionStore(dir, "auth_state_v1")
	_, err := store.Load()
	if !errors.Is(err, domain.ErrSessionCorrupted) {
		t.Errorf("Load() error = %v, want ErrSessionCorrupted", err)
	}
}

func TestFileSessionStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "storage")
	store := NewFileSessionStore(dir, "auth_state_v1")

	if err := store.Save(&domain.Session{}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "auth_state_v1.json")); err != nil {
		t.Errorf("expected blob file: %v", err)
	}
}

func TestFileSessionStore_SaveOverwrites(t *testing.T) {
	store := NewFileSessionStore(t.TempDir(), "auth_state_v1")

	if err := store.Save(&domain.Session{Authenticated: true, Username: "Neil Harryman", Token: "token_abc"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(&domain.Session{}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Authenticated || loaded.Username != "" || loaded.Token != "" {
		t.Errorf("Load() = %+v, want the cleared session", loaded)
	}
}
