package loop

import (
	"context"
	"math"
	"time"

	"github.com/cfoust/royale/pkg/game/timer"

	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Stepper advances a simulation by dt seconds.
type Stepper interface {
	Tick(dt float64)
}

// Loop drives a Stepper from the wall clock. Steps are clamped so a stall
// never produces a negative step or one longer than the configured maximum.
type Loop struct {
	stepper   Stepper
	period    time.Duration
	maxStep   float64
	scheduler *timer.Scheduler

	mutex  deadlock.Mutex
	ticker *Ticker
	last   time.Time
	paused bool

	// Runs after every step with the step that was applied.
	OnStep func(dt float64)
}

type Option func(*Loop)

// WithScheduler pauses and resumes scheduler together with the loop.
func WithScheduler(scheduler *timer.Scheduler) Option {
	return func(l *Loop) { l.scheduler = scheduler }
}

func New(stepper Stepper, tickRate int, maxStep float64, options ...Option) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}

	l := &Loop{
		stepper: stepper,
		period:  time.Second / time.Duration(tickRate),
		maxStep: maxStep,
	}

	for _, option := range options {
		option(l)
	}

	return l
}

func (l *Loop) Period() time.Duration { return l.period }

// Step advances the stepper by dt clamped to [0, maxStep] and returns the
// step that was applied.
func (l *Loop) Step(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if l.maxStep > 0 && dt > l.maxStep {
		dt = l.maxStep
	}

	l.stepper.Tick(dt)

	if l.OnStep != nil {
		l.OnStep(dt)
	}

	return dt
}

// Simulate runs fixed steps of dt until duration seconds have been
// simulated, without waiting on the clock. It returns the number of steps
// taken.
func (l *Loop) Simulate(ctx context.Context, duration, dt float64) (int, error) {
	if dt <= 0 || duration <= 0 {
		return 0, nil
	}

	steps := int(math.Ceil(duration/dt - 1e-9))
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		l.Step(dt)
	}

	return steps, nil
}

// Run steps the simulation in real time until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := NewTicker(l.period)
	defer ticker.Stop()

	l.mutex.Lock()
	l.ticker = ticker
	l.last = time.Now()
	if l.paused {
		ticker.Pause()
	}
	l.mutex.Unlock()

	log.Debug().Dur("period", l.period).Msg("loop started")

	for {
		select {
		case <-ctx.Done():
			l.mutex.Lock()
			l.ticker = nil
			l.mutex.Unlock()
			return ctx.Err()
		case now := <-ticker.C:
			l.mutex.Lock()
			if l.paused {
				l.mutex.Unlock()
				continue
			}
			dt := now.Sub(l.last).Seconds()
			l.last = now
			l.mutex.Unlock()

			l.Step(dt)
		}
	}
}

func (l *Loop) Pause() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.paused {
		return
	}
	l.paused = true

	if l.ticker != nil {
		l.ticker.Pause()
	}
	if l.scheduler != nil {
		l.scheduler.Pause()
	}
	log.Debug().Msg("loop paused")
}

// Resume continues the loop. Time spent paused is not simulated.
func (l *Loop) Resume() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.paused {
		return
	}
	l.paused = false
	l.last = time.Now()

	if l.ticker != nil {
		l.ticker.Resume()
	}
	if l.scheduler != nil {
		l.scheduler.Resume()
	}
	log.Debug().Msg("loop resumed")
}

func (l *Loop) Paused() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.paused
}
