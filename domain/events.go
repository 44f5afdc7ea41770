package domain

import "time"

// SessionEventType defines the type of session lifecycle event
type SessionEventType string

const (
	// Authentication events
	LoginEvent        SessionEventType = "SESSION_LOGIN"
	LoginFailureEvent SessionEventType = "SESSION_LOGIN_FAILED"
	LogoutEvent       SessionEventType = "SESSION_LOGOUT"

	// Inactivity events. An expiry is a forced logout and is deliberately
	// distinguishable from an explicit one so the host can render a
	// "logged out due to inactivity" notice.
	InactivityWarningEvent SessionEventType = "SESSION_INACTIVITY_WARNING"
	InactivityExpiredEvent SessionEventType = "SESSION_INACTIVITY_EXPIRED"

	// Transfer events
	TransferRejectedEvent SessionEventType = "TRANSFER_REJECTED"
)

// SessionEvent is a lifecycle event emitted by the session manager or the
// transfer flow for the host view to observe.
type SessionEvent struct {
	EventType SessionEventType       `json:"event_type"`
	Username  string                 `json:"username,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// EventSink receives session lifecycle events. A nil sink is valid; emitters
// must tolerate it.
type EventSink interface {
	Publish(event *SessionEvent)
}

// NewSessionEvent creates a new event with common fields populated
func NewSessionEvent(eventType SessionEventType, username string) *SessionEvent {
	return &SessionEvent{
		EventType: eventType,
		Username:  username,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the event
func (e *SessionEvent) WithError(err error) *SessionEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *SessionEvent) WithMetadata(key string, value interface{}) *SessionEvent {
	e.Metadata[key] = value
	return e
}
