package auth

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// FixedPinVerifier implements domain.PinVerifier against a fixed reference
// value, with consecutive-failure limiting and a lockout window. The fixed
// reference is a demo affordance; the interface is the contract, and a real
// deployment swaps in an external verification capability.
type FixedPinVerifier struct {
	reference   string
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time

	mu          sync.Mutex
	failures    int
	lockedUntil time.Time
}

// NewFixedPinVerifier creates a verifier. maxAttempts consecutive failures
// lock verification out for the lockout duration.
func NewFixedPinVerifier(reference string, maxAttempts int, lockout time.Duration) *FixedPinVerifier {
	return &FixedPinVerifier{
		reference:   reference,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Verify implements domain.PinVerifier. A correct secret resets the failure
// counter; exceeding maxAttempts returns ErrPinMaxAttempts until the lockout
// window has passed.
func (v *FixedPinVerifier) Verify(ctx context.Context, secret string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	if now.Before(v.lockedUntil) {
		return false, domain.ErrPinMaxAttempts
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(v.reference)) == 1 {
		v.failures = 0
		return true, nil
	}

	v.failures++
	if v.failures >= v.maxAttempts {
		v.failures = 0
		v.lockedUntil = now.Add(v.lockout)
		return false, domain.ErrPinMaxAttempts
	}
	return false, nil
}

var _ domain.PinVerifier = (*FixedPinVerifier)(nil)
