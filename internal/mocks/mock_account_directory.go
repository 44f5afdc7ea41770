package mocks

import (
	"context"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockAccountDirectory implements domain.AccountDirectory interface for testing
type MockAccountDirectory struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.Account, error)
	SaveFunc           func(ctx context.Context, username string, account *domain.Account) error
}

// NewMockAccountDirectory creates a new MockAccountDirectory with default behaviors
func NewMockAccountDirectory() *MockAccountDirectory {
	return &MockAccountDirectory{}
}

// FindByUsername finds the account owned by a user
func (m *MockAccountDirectory) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// Save upserts the account for a user
func (m *MockAccountDirectory) Save(ctx context.Context, username string, account *domain.Account) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, username, account)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountDirectory = (*MockAccountDirectory)(nil)
