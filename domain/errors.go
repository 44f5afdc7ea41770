package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrMalformedResponse  = errors.New("malformed user store response")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// PIN gate errors
var (
	ErrPinMismatch    = errors.New("incorrect pin")
	ErrPinMaxAttempts = errors.New("maximum pin attempts exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Transfer flow errors
var (
	ErrWrongStage       = errors.New("operation not valid in current stage")
	ErrValidationFailed = errors.New("transfer validation failed")
	ErrAccountNotFound  = errors.New("account not found")
)

// Storage errors
var (
	ErrSessionCorrupted = errors.New("persisted session is corrupted")
)
