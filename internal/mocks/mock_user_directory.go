package mocks

import (
	"context"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockUserDirectory implements domain.UserDirectory interface for testing
type MockUserDirectory struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	ListFunc           func(ctx context.Context) ([]domain.User, error)
	CountFunc          func(ctx context.Context) (int64, error)
}

// NewMockUserDirectory creates a new MockUserDirectory with default behaviors
func NewMockUserDirectory() *MockUserDirectory {
	return &MockUserDirectory{}
}

// Create creates a new user
func (m *MockUserDirectory) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByUsername finds a user by username
func (m *MockUserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// List returns all users
func (m *MockUserDirectory) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: empty
	return nil, nil
}

// Count returns the number of stored users
func (m *MockUserDirectory) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	// Default behavior: empty directory
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.UserDirectory = (*MockUserDirectory)(nil)
