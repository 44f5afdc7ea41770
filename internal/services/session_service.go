package services

import (
	"context"
	"sync"
	"time"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// SessionServiceConfig holds the inactivity policy deadlines, both measured
// from the most recent qualifying activity. WarnAfter must be shorter than
// ExpireAfter.
type SessionServiceConfig struct {
	WarnAfter   time.Duration
	ExpireAfter time.Duration
}

// SessionServiceImpl implements domain.SessionManager. It is the single
// source of truth for "who is logged in": it authenticates against the user
// store, persists the session blob on every change, and enforces the
// two-stage inactivity policy (warning, then forced logout).
type SessionServiceImpl struct {
	userStore domain.UserStore
	blob      domain.SessionStore
	scheduler domain.Scheduler
	sink      domain.EventSink
	config    SessionServiceConfig

	mu             sync.Mutex
	session        domain.Session
	warningVisible bool

	// generation stamps outstanding timers; a fired callback whose
	// generation is stale has been superseded and must do nothing
	generation  uint64
	warnTimer   domain.Timer
	expireTimer domain.Timer
}

// NewSessionService creates a session manager. The persisted blob is
// rehydrated immediately; storage failures degrade to an unauthenticated
// in-memory session. If the rehydrated session claims to be authenticated
// the inactivity timers are armed right away.
func NewSessionService(
	userStore domain.UserStore,
	blob domain.SessionStore,
	scheduler domain.Scheduler,
	sink domain.EventSink,
	config SessionServiceConfig,
) *SessionServiceImpl {
	s := &SessionServiceImpl{
		userStore: userStore,
		blob:      blob,
		scheduler: scheduler,
		sink:      sink,
		config:    config,
	}
	s.rehydrate()
	return s
}

// rehydrate loads the persisted session blob. The blob is advisory, not
// authoritative: legitimacy is re-checked against the bearer token on each
// server call, so a stale or tampered blob costs nothing beyond a failed
// request later.
func (s *SessionServiceImpl) rehydrate() {
	stored, err := s.blob.Load()
	if err != nil || stored == nil {
		return
	}
	if stored.Authenticated && (stored.Token == "" || stored.Username == "") {
		// invariant violated, treat as logged out
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = *stored
	if s.session.Authenticated {
		s.armLocked()
	}
}

// Login implements domain.SessionManager. Bad credentials, transport errors
// and malformed payloads all fold into a false return; the caller owns
// user-facing error messaging.
func (s *SessionServiceImpl) Login(ctx context.Context, username, password string) bool {
	result, err := s.userStore.Authenticate(ctx, username, password)
	if err != nil || result == nil || result.Token == "" || result.Profile == nil {
		s.publish(domain.NewSessionEvent(domain.LoginFailureEvent, username).WithError(err))
		return false
	}

	s.mu.Lock()
	s.session = domain.Session{
		Authenticated: true,
		Username:      result.Profile.DisplayName(),
		Role:          result.Profile.Role,
		Token:         result.Token,
	}
	s.warningVisible = false
	s.armLocked()
	s.persistLocked()
	display := s.session.Username
	s.mu.Unlock()

	s.publish(domain.NewSessionEvent(domain.LoginEvent, display))
	return true
}

// Logout implements domain.SessionManager. Idempotent.
func (s *SessionServiceImpl) Logout() {
	s.clear(domain.LogoutEvent)
}

// clear tears the session down, cancels both deadlines and hides any visible
// warning. reason distinguishes an explicit logout from an inactivity expiry.
func (s *SessionServiceImpl) clear(reason domain.SessionEventType) {
	s.mu.Lock()
	wasAuthenticated := s.session.Authenticated
	username := s.session.Username
	s.session = domain.Session{}
	s.warningVisible = false
	s.cancelTimersLocked()
	s.persistLocked()
	s.mu.Unlock()

	if wasAuthenticated {
		s.publish(domain.NewSessionEvent(reason, username))
	}
}

// RecordActivity handles a qualifying activity event: it hides a visible
// warning and re-arms both deadlines. A no-op while logged out.
func (s *SessionServiceImpl) RecordActivity(kind domain.ActivityKind) {
	_ = kind
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Authenticated {
		return
	}
	s.warningVisible = false
	s.armLocked()
}

// ResetInactivityTimer re-arms both deadlines from the current time. A no-op
// while logged out.
func (s *SessionServiceImpl) ResetInactivityTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Authenticated {
		return
	}
	s.armLocked()
}

// ShowInactivityWarning reports whether the pre-expiry warning is visible
func (s *SessionServiceImpl) ShowInactivityWarning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warningVisible
}

// DismissInactivityWarning hides the warning. Dismissal itself counts as
// activity, so both deadlines are re-armed in full.
func (s *SessionServiceImpl) DismissInactivityWarning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warningVisible = false
	if s.session.Authenticated {
		s.armLocked()
	}
}

// Current returns a copy of the session state
func (s *SessionServiceImpl) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// armLocked atomically replaces the outstanding deadline pair. Caller holds
// the mutex.
func (s *SessionServiceImpl) armLocked() {
	s.cancelTimersLocked()
	s.generation++
	gen := s.generation
	s.warnTimer = s.scheduler.AfterFunc(s.config.WarnAfter, func() { s.onWarnDeadline(gen) })
	s.expireTimer = s.scheduler.AfterFunc(s.config.ExpireAfter, func() { s.onExpireDeadline(gen) })
}

func (s *SessionServiceImpl) cancelTimersLocked() {
	s.generation++
	if s.warnTimer != nil {
		s.warnTimer.Stop()
		s.warnTimer = nil
	}
	if s.expireTimer != nil {
		s.expireTimer.Stop()
		s.expireTimer = nil
	}
}

func (s *SessionServiceImpl) onWarnDeadline(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.session.Authenticated {
		s.mu.Unlock()
		return
	}
	s.warningVisible = true
	username := s.session.Username
	s.mu.Unlock()

	s.publish(domain.NewSessionEvent(domain.InactivityWarningEvent, username))
}

func (s *SessionServiceImpl) onExpireDeadline(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.session.Authenticated {
		s.mu.Unlock()
		return
	}
	// teardown happens under the same lock as the staleness check so an
	// activity event queued back-to-back with this deadline cannot lose
	username := s.session.Username
	s.session = domain.Session{}
	s.warningVisible = false
	s.cancelTimersLocked()
	s.persistLocked()
	s.mu.Unlock()

	s.publish(domain.NewSessionEvent(domain.InactivityExpiredEvent, username))
}

// persistLocked overwrites the durable session blob. Storage errors are
// swallowed: persistence is a convenience, losing it must never break the
// in-memory session. Caller holds the mutex.
func (s *SessionServiceImpl) persistLocked() {
	snapshot := s.session
	_ = s.blob.Save(&snapshot)
}

func (s *SessionServiceImpl) publish(event *domain.SessionEvent) {
	if s.sink != nil {
		s.sink.Publish(event)
	}
}

var _ domain.SessionManager = (*SessionServiceImpl)(nil)
