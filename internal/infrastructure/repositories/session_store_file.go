package repositories

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// FileSessionStore implements domain.SessionStore as a single JSON file
// under the storage directory, named after the storage key. This is the
// durable client storage of a single-user installation.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a file-backed session store. dir is created on
// first save if it does not exist.
func NewFileSessionStore(dir, key string) *FileSessionStore {
	return &FileSessionStore{path: filepath.Join(dir, key+".json")}
}

// Load implements domain.SessionStore. A missing file is (nil, nil); a
// corrupted one reports ErrSessionCorrupted so the caller can degrade to an
// unauthenticated session.
func (s *FileSessionStore) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, domain.ErrSessionCorrupted
	}
	return &session, nil
}

// Save implements domain.SessionStore, overwriting the whole blob
func (s *FileSessionStore) Save(session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

var _ domain.SessionStore = (*FileSessionStore)(nil)
