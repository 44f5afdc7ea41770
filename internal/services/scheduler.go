package services

import (
	"time"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// realScheduler implements domain.Scheduler on top of the runtime timers
type realScheduler struct{}

// NewScheduler returns the production scheduler. Tests use the fake one in
// internal/mocks instead.
func NewScheduler() domain.Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) domain.Timer {
	return time.AfterFunc(d, f)
}
