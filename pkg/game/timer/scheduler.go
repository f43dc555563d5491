package timer

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Scheduler owns every pending deferred callback so the host can freeze
// them together with the frame loop.
type Scheduler struct {
	mutex   deadlock.Mutex
	pending map[*Timer]struct{}
	paused  bool
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[*Timer]struct{}),
	}
}

// AfterFunc schedules f to run once d of unpaused time has passed. After
// Stop it returns nil and f never runs.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) *Timer {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stopped {
		return nil
	}

	var t *Timer
	t = AfterFunc(d, func() {
		s.mutex.Lock()
		delete(s.pending, t)
		s.mutex.Unlock()
		f()
	})
	s.pending[t] = struct{}{}

	if !s.paused {
		t.Start()
	}

	return t
}

func (s *Scheduler) Pause() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.paused || s.stopped {
		return
	}
	s.paused = true
	for t := range s.pending {
		t.Pause()
	}
}

func (s *Scheduler) Resume() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.paused || s.stopped {
		return
	}
	s.paused = false
	for t := range s.pending {
		t.Start()
	}
}

// Stop cancels every pending callback.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stopped = true
	for t := range s.pending {
		t.Stop()
	}
	s.pending = make(map[*Timer]struct{})
}

func (s *Scheduler) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.pending)
}
