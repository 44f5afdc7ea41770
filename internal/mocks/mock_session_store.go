package mocks

import (
	"sync"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockSessionStore implements domain.SessionStore interface for testing. With
// no overrides it behaves as an in-memory single-slot store.
type MockSessionStore struct {
	LoadFunc func() (*domain.Session, error)
	SaveFunc func(session *domain.Session) error

	mu    sync.Mutex
	saved *domain.Session
	saves int
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Load returns the stored session blob
func (m *MockSessionStore) Load() (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, nil
	}
	copied := *m.saved
	return &copied, nil
}

// Save persists the session blob
func (m *MockSessionStore) Save(session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.saved = &copied
	m.saves++
	return nil
}

// Saved returns the last session written through the default Save path
func (m *MockSessionStore) Saved() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil
	}
	copied := *m.saved
	return &copied
}

// SaveCount reports how many times Save ran with the default behavior
func (m *MockSessionStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
