package mocks

import (
	"time"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(username, role string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate creates a bearer token for the user
func (m *MockTokenService) Generate(username, role string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(username, role)
	}
	// Default behavior: deterministic fake token
	return "token_" + username, nil
}

// Validate parses and validates a bearer token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: reject unknown tokens, accept the fake format
	if len(token) > 6 && token[:6] == "token_" {
		now := time.Now()
		return &domain.TokenClaims{
			Username:  token[6:],
			Role:      domain.RoleCustomer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(15 * time.Minute).Unix(),
		}, nil
	}
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
