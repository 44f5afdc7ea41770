package mocks

import (
	"context"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockUserStore implements domain.UserStore interface for testing
type MockUserStore struct {
	AuthenticateFunc func(ctx context.Context, username, password string) (*domain.AuthResult, error)
	AccountsFunc     func(ctx context.Context, username, token string) ([]domain.Account, error)
}

// NewMockUserStore creates a new MockUserStore with default behaviors
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

// Authenticate exchanges credentials for a token and profile
func (m *MockUserStore) Authenticate(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidCredentials
}

// Accounts returns the account projections for a user
func (m *MockUserStore) Accounts(ctx context.Context, username, token string) ([]domain.Account, error) {
	if m.AccountsFunc != nil {
		return m.AccountsFunc(ctx, username, token)
	}
	// Default behavior: empty
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.UserStore = (*MockUserStore)(nil)
