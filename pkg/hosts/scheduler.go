package hosts

import (
	"sync"
	"time"

	"github.com/m-mizutani/catena/pkg/domain/interfaces"
)

type timerScheduler struct{}

// NewScheduler returns the real timer facility backed by time.AfterFunc.
func NewScheduler() interfaces.Scheduler {
	return &timerScheduler{}
}

func (s *timerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler is a deterministic scheduler driven by Advance. Timers fire
// in deadline order, ties in registration order, on the goroutine calling
// Advance. It backs tests and stepped playback where wall-clock timing would
// be flaky.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers []*manualTimer
}

type manualTimer struct {
	id  int
	due time.Duration
	fn  func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	t := &manualTimer{id: s.nextID, due: s.now + d, fn: fn}
	s.nextID++
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return func() { s.cancel(t.id) }
}

// Advance moves the clock forward by d, firing every timer that becomes due.
// Callbacks run with the lock released, so they may register or cancel
// timers; timers registered within the advanced window fire in the same call.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		best := -1
		for i, t := range s.timers {
			if t.due > target {
				continue
			}
			if best == -1 || t.due < s.timers[best].due ||
				(t.due == s.timers[best].due && t.id < s.timers[best].id) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		t := s.timers[best]
		s.timers = append(s.timers[:best], s.timers[best+1:]...)
		if t.due > s.now {
			s.now = t.due
		}
		s.mu.Unlock()
		t.fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// Now returns the current manual clock reading.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers not yet fired or cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ManualScheduler) cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}
