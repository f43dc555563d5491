package storm

import (
	"testing"

	"github.com/cfoust/royale/pkg/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorm(t *testing.T, config Config) *Storm {
	s, err := New(config, geom.Zero)
	require.NoError(t, err)
	return s
}

func TestValidate(t *testing.T) {
	good := Config{
		InitialRadius:   100,
		FinalRadius:     10,
		ShrinkDuration:  5,
		PauseDuration:   5,
		DamagePerSecond: 1,
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.FinalRadius = 200
	assert.Error(t, bad.Validate())

	bad = good
	bad.ShrinkDuration = 0
	assert.Error(t, bad.Validate())

	bad = good
	bad.ShrinkRatio = 1
	_, err := New(bad, geom.Zero)
	assert.Error(t, err)
}

func TestDamageOutsideZone(t *testing.T) {
	s := newStorm(t, Config{
		InitialRadius:   20,
		FinalRadius:     5,
		ShrinkDuration:  10,
		PauseDuration:   100,
		DamagePerSecond: 2,
	})

	outside := geom.NewVector(25, 0, 0)
	assert.Equal(t, 1.0, s.Update(0.5, outside))

	inside := geom.NewVector(0, 50, 19)
	assert.Equal(t, 0.0, s.Update(0.5, inside), "height does not matter")

	assert.Equal(t, 0.0, s.Update(-1, outside), "negative dt counts as zero")
}

func TestShrinkRecurrence(t *testing.T) {
	var phases []Phase
	s := newStorm(t, Config{
		InitialRadius:   100,
		FinalRadius:     10,
		ShrinkDuration:  4,
		PauseDuration:   1,
		DamagePerSecond: 1,
	})
	s.OnPhase = func(phase Phase, radius, target float64) {
		phases = append(phases, phase)
	}

	assert.Equal(t, Paused, s.Phase())
	assert.Equal(t, 1.0, s.TimeLeft())

	s.Update(1, geom.Zero)
	assert.Equal(t, Shrinking, s.Phase())
	assert.Equal(t, 70.0, s.TargetRadius())
	// The timer is reset before the first shrink step runs.
	assert.Equal(t, 4.0, s.TimeLeft())
	// dt * (100 - 70) / 4
	assert.InDelta(t, 92.5, s.Radius(), 1e-9)

	s.Update(1, geom.Zero)
	assert.InDelta(t, 85.0, s.Radius(), 1e-9)
	assert.Equal(t, 3.0, s.TimeLeft())

	s.Update(1.5, geom.Zero)
	assert.InDelta(t, 70.0, s.Radius(), 1e-9)
	assert.Equal(t, Shrinking, s.Phase())

	s.Update(1.5, geom.Zero)
	assert.Equal(t, Paused, s.Phase())
	assert.Equal(t, 70.0, s.Radius())
	assert.Equal(t, 1.0, s.TimeLeft())
	assert.Equal(t, []Phase{Shrinking, Paused}, phases)
}

func TestTinyTimeLeftDoesNotUndershoot(t *testing.T) {
	s := newStorm(t, Config{
		InitialRadius:   100,
		FinalRadius:     10,
		ShrinkDuration:  2,
		PauseDuration:   1,
		DamagePerSecond: 1,
	})

	s.Update(1, geom.Zero)
	require.Equal(t, Shrinking, s.Phase())
	assert.InDelta(t, 85.0, s.Radius(), 1e-9)

	// timeLeft ends up at 1e-6, so the raw step would be enormous.
	s.Update(1.999999, geom.Zero)
	require.Equal(t, Shrinking, s.Phase())
	assert.GreaterOrEqual(t, s.Radius(), s.TargetRadius())
	assert.Equal(t, 70.0, s.Radius())
}

func TestRadiusConverges(t *testing.T) {
	config := Config{
		InitialRadius:   200,
		FinalRadius:     15,
		ShrinkDuration:  3,
		PauseDuration:   2,
		DamagePerSecond: 1,
	}
	s := newStorm(t, config)

	previous := s.Radius()
	dts := []float64{0.016, 0.033, 0.1, 0.25, 0.007}
	for i := 0; i < 20000; i++ {
		s.Update(dts[i%len(dts)], geom.Zero)
		require.LessOrEqual(t, s.Radius(), previous)
		require.GreaterOrEqual(t, s.Radius(), config.FinalRadius)
		previous = s.Radius()
	}

	assert.Equal(t, config.FinalRadius, s.Radius())
	assert.Equal(t, config.FinalRadius, s.TargetRadius())
}

func TestCustomRatio(t *testing.T) {
	s := newStorm(t, Config{
		InitialRadius:   100,
		FinalRadius:     0,
		ShrinkDuration:  1,
		PauseDuration:   1,
		DamagePerSecond: 1,
		ShrinkRatio:     0.5,
	})
	s.Update(1, geom.Zero)
	assert.Equal(t, 50.0, s.TargetRadius())
}
