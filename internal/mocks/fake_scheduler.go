package mocks

import (
	"sync"
	"time"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// FakeScheduler implements domain.Scheduler on a manual clock. Tests advance
// time explicitly with Advance; callbacks fire synchronously on the advancing
// goroutine, outside the scheduler lock, so they may arm new timers.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	sched   *FakeScheduler
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewFakeScheduler creates a scheduler with the clock at zero
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

// AfterFunc schedules f relative to the current fake time
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{sched: s, due: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer, reporting whether it was still pending
func (t *fakeTimer) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers armed by a fired callback participate if they fall inside the same
// window.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.fired || t.stopped || t.due > target {
				continue
			}
			if next == nil || t.due < next.due {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		if next.due > s.now {
			s.now = next.due
		}
		next.fired = true
		s.mu.Unlock()
		next.f()
		s.mu.Lock()
	}
}

// Pending reports how many timers are armed and not yet fired or stopped
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Compile-time interface compliance verification
var _ domain.Scheduler = (*FakeScheduler)(nil)
