package storm

import (
	"fmt"

	"github.com/cfoust/royale/pkg/geom"

	"github.com/rs/zerolog/log"
)

type Phase uint8

const (
	Paused Phase = iota
	Shrinking
)

func (p Phase) String() string {
	switch p {
	case Paused:
		return "paused"
	case Shrinking:
		return "shrinking"
	}
	return "unknown"
}

const DefaultShrinkRatio = 0.7

type Config struct {
	InitialRadius float64 `json:"initialRadius"`
	FinalRadius   float64 `json:"finalRadius"`
	// Seconds.
	ShrinkDuration  float64 `json:"shrinkDuration"`
	PauseDuration   float64 `json:"pauseDuration"`
	DamagePerSecond float64 `json:"damagePerSecond"`
	// Each shrink targets radius * ShrinkRatio. Zero means
	// DefaultShrinkRatio.
	ShrinkRatio float64 `json:"shrinkRatio,omitempty"`
}

func (c Config) Validate() error {
	switch {
	case c.FinalRadius < 0:
		return fmt.Errorf("storm final radius must not be negative")
	case c.InitialRadius < c.FinalRadius:
		return fmt.Errorf("storm initial radius %v is smaller than final radius %v", c.InitialRadius, c.FinalRadius)
	case c.ShrinkDuration <= 0:
		return fmt.Errorf("storm shrink duration must be positive")
	case c.PauseDuration <= 0:
		return fmt.Errorf("storm pause duration must be positive")
	case c.DamagePerSecond < 0:
		return fmt.Errorf("storm damage must not be negative")
	case c.ShrinkRatio < 0 || c.ShrinkRatio >= 1:
		return fmt.Errorf("storm shrink ratio must be in [0, 1)")
	}
	return nil
}

func (c Config) ratio() float64 {
	if c.ShrinkRatio == 0 {
		return DefaultShrinkRatio
	}
	return c.ShrinkRatio
}

// Storm is the shrinking safe zone. It alternates between Paused and
// Shrinking forever; once the radius reaches FinalRadius the shrinking
// phases no longer change anything.
type Storm struct {
	config Config
	center geom.Vector

	radius       float64
	targetRadius float64
	phase        Phase
	timeLeft     float64

	// Called after every phase transition.
	OnPhase func(phase Phase, radius, target float64)
}

func New(config Config, center geom.Vector) (*Storm, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Storm{
		config:       config,
		center:       center,
		radius:       config.InitialRadius,
		targetRadius: config.InitialRadius,
		phase:        Paused,
		timeLeft:     config.PauseDuration,
	}, nil
}

func (s *Storm) Config() Config { return s.config }
func (s *Storm) Center() geom.Vector { return s.center }
func (s *Storm) Radius() float64 { return s.radius }
func (s *Storm) TargetRadius() float64 { return s.targetRadius }
func (s *Storm) Phase() Phase { return s.phase }
func (s *Storm) TimeLeft() float64 { return s.timeLeft }

// Contains reports whether pos is inside the safe zone. Height is ignored.
func (s *Storm) Contains(pos geom.Vector) bool {
	return geom.PlanarDistance(pos, s.center) <= s.radius
}

// Update advances the zone by dt seconds and returns the damage an actor
// standing at pos takes during this tick.
func (s *Storm) Update(dt float64, pos geom.Vector) float64 {
	if dt < 0 {
		dt = 0
	}

	s.timeLeft -= dt
	if s.timeLeft <= 0 {
		switch s.phase {
		case Paused:
			s.beginShrink()
		case Shrinking:
			s.beginPause()
		}
	}

	if s.phase == Shrinking {
		s.shrink(dt)
	}

	if s.Contains(pos) {
		return 0
	}
	return s.config.DamagePerSecond * dt
}

func (s *Storm) beginShrink() {
	s.phase = Shrinking
	s.timeLeft = s.config.ShrinkDuration

	target := s.radius * s.config.ratio()
	if target < s.config.FinalRadius {
		target = s.config.FinalRadius
	}
	s.targetRadius = target

	s.transitioned()
}

func (s *Storm) beginPause() {
	s.phase = Paused
	s.timeLeft = s.config.PauseDuration
	// With a variable dt the last shrink step can leave a sliver.
	s.radius = s.targetRadius

	s.transitioned()
}

func (s *Storm) transitioned() {
	log.Debug().
		Str("phase", s.phase.String()).
		Float64("radius", s.radius).
		Float64("target", s.targetRadius).
		Float64("timeLeft", s.timeLeft).
		Msg("storm phase changed")

	if s.OnPhase != nil {
		s.OnPhase(s.phase, s.radius, s.targetRadius)
	}
}

// shrink closes dt/timeLeft of the remaining gap, which approaches the
// target faster as the phase runs out.
func (s *Storm) shrink(dt float64) {
	gap := s.radius - s.targetRadius
	if gap <= 0 {
		return
	}

	if s.timeLeft <= 0 {
		s.radius = s.targetRadius
		return
	}

	amount := dt * gap / s.timeLeft
	if amount > gap {
		amount = gap
	}
	s.radius -= amount
}
