package mocks

import (
	"sync"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// MockEventSink implements domain.EventSink interface for testing, recording
// every published event in order.
type MockEventSink struct {
	PublishFunc func(event *domain.SessionEvent)

	mu     sync.Mutex
	events []*domain.SessionEvent
}

// NewMockEventSink creates a new MockEventSink
func NewMockEventSink() *MockEventSink {
	return &MockEventSink{}
}

// Publish records the event
func (m *MockEventSink) Publish(event *domain.SessionEvent) {
	if m.PublishFunc != nil {
		m.PublishFunc(event)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a snapshot of the recorded events
func (m *MockEventSink) Events() []*domain.SessionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.SessionEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the recorded event types in publish order
func (m *MockEventSink) Types() []domain.SessionEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SessionEventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType)
	}
	return out
}

// Compile-time interface compliance verification
var _ domain.EventSink = (*MockEventSink)(nil)
