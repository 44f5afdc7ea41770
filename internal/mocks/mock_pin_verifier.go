package mocks

import (
	"context"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockPinVerifier implements domain.PinVerifier interface for testing
type MockPinVerifier struct {
	VerifyFunc func(ctx context.Context, secret string) (bool, error)

	// Reference is compared against by the default behavior
	Reference string
}

// NewMockPinVerifier creates a verifier that accepts the given reference PIN
func NewMockPinVerifier(reference string) *MockPinVerifier {
	return &MockPinVerifier{Reference: reference}
}

// Verify checks the secret against the reference PIN
func (m *MockPinVerifier) Verify(ctx context.Context, secret string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, secret)
	}
	return secret == m.Reference, nil
}

// Compile-time interface compliance verification
var _ domain.PinVerifier = (*MockPinVerifier)(nil)
