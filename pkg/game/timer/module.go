package timer

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

const (
	stateIdle = iota
	stateActive
	stateExpired
)

// Timer runs a callback once after a duration of unpaused wall-clock time.
// Unlike time.Timer it can be paused and resumed, which keeps visual-only
// effects in step with a frozen frame loop.
type Timer struct {
	t  *time.Timer
	fn func()

	l         deadlock.Mutex // guards the fields below
	state     int
	duration  time.Duration
	startedAt time.Time
}

// AfterFunc returns an idle Timer that calls f in its own goroutine once it
// has been running for d.
func AfterFunc(d time.Duration, f func()) *Timer {
	return &Timer{
		duration: d,
		fn:       f,
	}
}

func (t *Timer) fire() {
	t.l.Lock()
	if t.state != stateActive {
		t.l.Unlock()
		return
	}
	t.state = stateExpired
	t.l.Unlock()

	t.fn()
}

// Start starts or resumes the timer. It returns false if the timer is
// already running or has expired.
func (t *Timer) Start() bool {
	t.l.Lock()
	defer t.l.Unlock()
	if t.state != stateIdle {
		return false
	}
	t.startedAt = time.Now()
	t.state = stateActive
	t.t = time.AfterFunc(t.duration, t.fire)
	return true
}

// Pause stops the timer and remembers how much time was left. The next
// Start call waits for the rest of the duration.
func (t *Timer) Pause() bool {
	t.l.Lock()
	defer t.l.Unlock()
	if t.state != stateActive {
		return false
	}
	if !t.t.Stop() {
		// Already firing.
		return false
	}
	t.state = stateIdle
	t.duration -= time.Since(t.startedAt)
	if t.duration < 0 {
		t.duration = 0
	}
	return true
}

func (t *Timer) Paused() bool {
	t.l.Lock()
	defer t.l.Unlock()
	return t.state == stateIdle
}

// Stop prevents the Timer from firing. It returns true if the call stopped
// the timer, false if it had already expired or been stopped.
func (t *Timer) Stop() bool {
	t.l.Lock()
	defer t.l.Unlock()
	switch t.state {
	case stateIdle:
		t.state = stateExpired
		return true
	case stateActive:
		t.state = stateExpired
		return t.t.Stop()
	default:
		return false
	}
}

// TimeLeft is safe to call on a nil timer and returns 0 in that case.
func (t *Timer) TimeLeft() time.Duration {
	if t == nil {
		return 0
	}

	t.l.Lock()
	defer t.l.Unlock()

	switch t.state {
	case stateIdle:
		return t.duration
	case stateActive:
		left := t.duration - time.Since(t.startedAt)
		if left < 0 {
			return 0
		}
		return left
	default:
		return 0
	}
}
