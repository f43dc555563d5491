package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/cfoust/royale/pkg/config"
	"github.com/cfoust/royale/pkg/game/match"
	"github.com/cfoust/royale/pkg/game/timer"
	"github.com/cfoust/royale/pkg/geom"
	"github.com/cfoust/royale/pkg/loop"
	"github.com/cfoust/royale/pkg/utils"

	"github.com/rs/zerolog/log"
)

// script feeds scripted input into the match before every tick.
type script struct {
	match     *match.Match
	fireEvery float64
	sinceFire float64
}

func (s *script) Tick(dt float64) {
	if s.fireEvery > 0 {
		s.sinceFire += dt
		if s.sinceFire >= s.fireEvery {
			s.sinceFire = 0
			s.match.Shoot()
		}
	}
	s.match.Tick(dt)
}

// logImpacts stands in for a renderer's impact decals.
type logImpacts struct{}

func (logImpacts) SpawnImpact(point, normal geom.Vector) func() {
	log.Debug().
		Float64("x", point.X).
		Float64("y", point.Y).
		Float64("z", point.Z).
		Msg("impact spawned")
	return func() { log.Debug().Msg("impact removed") }
}

func loadConfig(paths []string) (*config.Config, error) {
	if len(paths) == 0 {
		if env := os.Getenv("ROYALE_CONFIG"); env != "" {
			paths = strings.Split(env, ",")
		}
	}

	cfg, err := config.Process(paths)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %v", err)
	}
	return cfg, nil
}

func drainEvents(sub *utils.Subscriber[match.Event]) {
	for {
		select {
		case event := <-sub.Recv():
			entry := log.Info()
			if event.Kind == match.StormDamage {
				entry = log.Debug()
			}
			entry.
				Str("kind", event.Kind.String()).
				Float64("time", event.Time).
				Str("weapon", event.Weapon).
				Str("target", event.Target).
				Float64("amount", event.Amount).
				Str("phase", event.Phase).
				Float64("radius", event.Radius).
				Msg("event")
		default:
			return
		}
	}
}

func simCommand(configs []string) error {
	cfg, err := loadConfig(configs)
	if err != nil {
		return err
	}

	options := CLI.Sim

	scheduler := timer.NewScheduler()
	defer scheduler.Stop()

	m, err := match.New(cfg, match.WithEffects(logImpacts{}, scheduler), match.WithEventBuffer(1024))
	if err != nil {
		return err
	}

	p := m.Player
	p.SetLook(options.Yaw*math.Pi/180, 0)
	p.SetMovement(
		options.Forward,
		false,
		options.Strafe == "left",
		options.Strafe == "right",
		options.Sprint,
	)
	if options.Crouch {
		p.ToggleCrouch()
	}
	if !p.SwitchWeapon(options.Slot) {
		return fmt.Errorf("no weapon in slot %d", options.Slot)
	}

	sub := m.Events.Subscribe()
	defer sub.Done()

	var recorder *match.Recorder
	if options.Out != "" {
		file, err := os.Create(options.Out)
		if err != nil {
			return fmt.Errorf("could not create %s: %v", options.Out, err)
		}
		defer file.Close()
		recorder = match.NewRecorder(file)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	driver := loop.New(
		&script{match: m, fireEvery: options.FireEvery},
		cfg.Simulation.TickRate,
		cfg.Simulation.MaxStep,
		loop.WithScheduler(scheduler),
	)

	var sinceRecord float64
	var recordErr error
	driver.OnStep = func(dt float64) {
		drainEvents(sub)

		if recorder != nil && recordErr == nil {
			sinceRecord += dt
			if sinceRecord >= options.Every {
				sinceRecord = 0
				recordErr = recorder.Record(m.Snapshot())
			}
		}

		if m.Over() || m.Elapsed() >= options.Duration {
			cancel()
		}
	}

	log.Info().
		Float64("duration", options.Duration).
		Bool("realtime", options.Realtime).
		Str("weapon", p.Active().Name()).
		Msg("starting match")

	if options.Realtime {
		err = driver.Run(ctx)
	} else {
		step := options.Step
		if step <= 0 {
			step = driver.Period().Seconds()
		}
		_, err = driver.Simulate(ctx, options.Duration, step)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if recordErr != nil {
		return fmt.Errorf("could not record snapshot: %v", recordErr)
	}

	snapshot := m.Snapshot()
	down := 0
	for _, target := range snapshot.Targets {
		if target.Health <= 0 {
			down++
		}
	}

	summary := log.Info().
		Float64("time", snapshot.Time).
		Bool("alive", m.Player.Alive()).
		Float64("health", snapshot.Health).
		Float64("armor", snapshot.Armor).
		Float64("zone", snapshot.Zone.Radius).
		Int("targetsDown", down).
		Uint64("droppedEvents", m.Events.Dropped())
	if recorder != nil {
		summary = summary.Int("snapshots", recorder.Count())
	}
	summary.Msg("match finished")

	return nil
}
