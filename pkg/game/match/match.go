package match

import (
	"fmt"

	"github.com/cfoust/royale/pkg/arena"
	"github.com/cfoust/royale/pkg/collision"
	"github.com/cfoust/royale/pkg/config"
	"github.com/cfoust/royale/pkg/game/player"
	"github.com/cfoust/royale/pkg/game/storm"
	"github.com/cfoust/royale/pkg/game/timer"
	"github.com/cfoust/royale/pkg/game/weapon"
	"github.com/cfoust/royale/pkg/utils"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

const defaultEventBuffer = 64

type options struct {
	effects   weapon.Effects
	scheduler *timer.Scheduler
	buffer    int
}

type Option func(*options)

// WithEffects gives every weapon an impact spawner. Impacts are removed
// through scheduler.
func WithEffects(effects weapon.Effects, scheduler *timer.Scheduler) Option {
	return func(o *options) {
		o.effects = effects
		o.scheduler = scheduler
	}
}

func WithEventBuffer(size int) Option {
	return func(o *options) { o.buffer = size }
}

// Match is a single actor fighting the storm in an arena full of targets.
// It is not safe for concurrent use; drive it from one goroutine.
type Match struct {
	Player *player.Player
	Storm  *storm.Storm
	Arena  *arena.Arena
	Events *utils.Topic[Event]

	elapsed float64
	over    bool
}

func New(cfg *config.Config, opts ...Option) (*Match, error) {
	settings := options{buffer: defaultEventBuffer}
	for _, o := range opts {
		o(&settings)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := arena.Build(cfg.Arena)
	if err != nil {
		return nil, fmt.Errorf("could not build arena: %v", err)
	}

	loadout, err := cfg.LoadoutConfigs()
	if err != nil {
		return nil, err
	}

	inventory := make([]*weapon.Weapon, 0, len(loadout))
	for _, weaponConfig := range loadout {
		var weaponOptions []weapon.Option
		if settings.effects != nil {
			var scheduler weapon.Scheduler
			if settings.scheduler != nil {
				scheduler = settings.scheduler
			}
			weaponOptions = append(weaponOptions, weapon.WithEffects(settings.effects, scheduler))
		}

		w, err := weapon.New(weaponConfig, weaponOptions...)
		if err != nil {
			return nil, err
		}
		inventory = append(inventory, w)
	}

	p, err := player.New(cfg.Player, inventory, player.WithScene(a.Full))
	if err != nil {
		return nil, err
	}

	s, err := storm.New(cfg.Storm, a.Center())
	if err != nil {
		return nil, err
	}

	m := &Match{
		Player: p,
		Storm:  s,
		Arena:  a,
		Events: utils.NewTopic[Event](settings.buffer),
	}

	s.OnPhase = func(phase storm.Phase, radius, target float64) {
		m.publish(Event{
			Kind:   StormPhase,
			Phase:  phase.String(),
			Radius: target,
		})
	}

	for _, dummy := range a.Dummies {
		dummy.OnDamage = m.dummyDamaged
	}

	return m, nil
}

func (m *Match) Elapsed() float64 { return m.elapsed }

// Over is true once the player has died.
func (m *Match) Over() bool { return m.over }

func (m *Match) publish(event Event) {
	event.Time = m.elapsed
	m.Events.Publish(event)
}

func (m *Match) dummyDamaged(dummy *arena.Dummy, amount float64) {
	m.publish(Event{
		Kind:   TargetHit,
		Weapon: m.Player.Active().Name(),
		Target: dummy.Name,
		Amount: amount,
	})

	if dummy.Alive() {
		return
	}

	log.Info().Str("target", dummy.Name).Float64("time", m.elapsed).Msg("target down")
	m.publish(Event{
		Kind:   TargetDown,
		Weapon: m.Player.Active().Name(),
		Target: dummy.Name,
	})
}

// Shoot pulls the trigger of the active weapon. A dead player's weapon
// behaves as if it were cooling down.
func (m *Match) Shoot() weapon.Shot {
	if m.over {
		return weapon.Shot{Result: weapon.Cooldown, Hit: opt.None[collision.Hit]()}
	}

	active := m.Player.Active()
	wasReloading := active.Reloading()

	shot := m.Player.Shoot()
	switch {
	case shot.Result == weapon.Fired:
		m.publish(Event{Kind: ShotFired, Weapon: active.Name()})
	case !wasReloading && active.Reloading():
		m.reloadStarted(active)
	}

	return shot
}

func (m *Match) Reload() bool {
	if m.over || !m.Player.Reload() {
		return false
	}
	m.reloadStarted(m.Player.Active())
	return true
}

func (m *Match) reloadStarted(w *weapon.Weapon) {
	m.publish(Event{Kind: ReloadStarted, Weapon: w.Name()})
}

// Tick advances the match by dt seconds. The storm goes first and its
// damage lands in the same tick, then the player moves.
func (m *Match) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	m.elapsed += dt

	damage := m.Storm.Update(dt, m.Player.Position())
	if m.over {
		return
	}

	if damage > 0 {
		m.Player.TakeDamage(damage)
		m.publish(Event{Kind: StormDamage, Amount: damage})

		if !m.Player.Alive() {
			m.over = true
			log.Info().Float64("time", m.elapsed).Msg("player died in the storm")
			m.publish(Event{Kind: PlayerDied})
			return
		}
	}

	active := m.Player.Active()
	wasReloading := active.Reloading()

	m.Player.Update(dt, m.Arena.Static)

	if wasReloading && !active.Reloading() {
		m.publish(Event{Kind: ReloadFinished, Weapon: active.Name()})
	}
}
