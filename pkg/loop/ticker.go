package loop

import (
	"sync/atomic"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Ticker is a time.Ticker that can be paused. Ticks that arrive while
// paused, or while nobody is receiving, are dropped.
type Ticker struct {
	C <-chan time.Time

	mutex   deadlock.Mutex
	paused  atomic.Bool
	done    chan struct{}
	stopped bool
	ticker  *time.Ticker
}

func NewTicker(d time.Duration) *Ticker {
	c := make(chan time.Time, 1)
	t := &Ticker{
		C:      c,
		done:   make(chan struct{}),
		ticker: time.NewTicker(d),
	}

	go t.run(c)

	return t
}

func (t *Ticker) run(c chan<- time.Time) {
	defer t.ticker.Stop()

	for {
		select {
		case now := <-t.ticker.C:
			if t.paused.Load() {
				continue
			}

			select {
			case c <- now:
			default:
			}
		case <-t.done:
			return
		}
	}
}

func (t *Ticker) Pause()       { t.paused.Store(true) }
func (t *Ticker) Resume()      { t.paused.Store(false) }
func (t *Ticker) Paused() bool { return t.paused.Load() }

func (t *Ticker) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	close(t.done)
}

func (t *Ticker) Stopped() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.stopped
}
