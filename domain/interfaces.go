package domain

import (
	"context"
	"time"
)

// UserStore is the excluded persistence/API layer seen from the client:
// credential verification and account projection, nothing else.
type UserStore interface {
	// Authenticate exchanges credentials for a bearer token and profile.
	// Any failure mode (bad credentials, transport error, malformed
	// payload) is reported as an error.
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	// Accounts returns the account projections for a user. The bearer
	// token is forwarded verbatim and never inspected by the client.
	Accounts(ctx context.Context, username, token string) ([]Account, error)
}

// SessionStore is the durable client storage holding the persisted session
// blob under a single key. Load returns (nil, nil) when nothing is stored.
// All writes flow through the session manager; no other component writes it.
type SessionStore interface {
	Load() (*Session, error)
	Save(session *Session) error
}

// PinVerifier is the second-factor confirmation gate guarding a sensitive
// action. Implementations are expected to limit attempts.
type PinVerifier interface {
	Verify(ctx context.Context, secret string) (bool, error)
}

// Timer is a cancellable pending deadline
type Timer interface {
	Stop() bool
}

// Scheduler schedules deadline callbacks. Injectable so tests can simulate
// time passage deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SessionManager owns authentication state and the inactivity policy
type SessionManager interface {
	Login(ctx context.Context, username, password string) bool
	Logout()
	RecordActivity(kind ActivityKind)
	ResetInactivityTimer()
	ShowInactivityWarning() bool
	DismissInactivityWarning()
	Current() Session
}

// TransferFlow is the wire-transfer form state machine
type TransferFlow interface {
	LoadFee(ctx context.Context, username, token string)
	SelectCountry(country Country)
	SetField(field Field, value string)
	FieldValue(field Field) string
	Submit() bool
	SetPin(value string)
	ConfirmPin(ctx context.Context) bool
	CancelPin()
	DismissRejection()
	Stage() TransferStage
	ValidationErrors() map[Field]string
	PinError() string
	RejectionNotice() string
}

// UserDirectory defines user data access for the stub server
type UserDirectory interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
}

// AccountDirectory defines account data access for the stub server
type AccountDirectory interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	Save(ctx context.Context, username string, account *Account) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer-token operations for the stub server
type TokenService interface {
	Generate(username, role string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// TokenClaims represents bearer token claims
type TokenClaims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// PolicyService defines authorization policy operations for the stub server
type PolicyService interface {
	CheckPermission(role, resource, action string) (bool, error)
}
